package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmcalero-dev/Vectora/internal/core"
	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// VideoNoAnalysisMarker is stored when no frame could be sampled or
// captioned. It is an OK fragment: the video was handled, there is simply
// nothing to say about it.
const VideoNoAnalysisMarker = "[video attachment: no analysis available]"

// VideoExtractor samples bounded, evenly-spaced frames and captions each one
// independently through the image-captioning collaborator, then joins the
// per-frame captions tagged with their timestamps.
type VideoExtractor struct {
	captioner core.Captioner
	interval  time.Duration
	maxFrames int
	logger    *logging.Logger

	// sample is swappable for tests; defaults to the ffmpeg-backed sampler.
	sample func(ctx context.Context, data []byte) []Frame
}

func NewVideoExtractor(captioner core.Captioner, interval time.Duration, maxFrames int, logger *logging.Logger) *VideoExtractor {
	e := &VideoExtractor{
		captioner: captioner,
		interval:  interval,
		maxFrames: maxFrames,
		logger:    logger,
	}
	e.sample = func(ctx context.Context, data []byte) []Frame {
		return SampleFrames(ctx, data, e.interval, e.maxFrames, e.logger)
	}
	return e
}

func (e *VideoExtractor) Extract(ctx context.Context, data []byte) Fragment {
	frames := e.sample(ctx, data)
	if len(frames) == 0 {
		return TextFragment(VideoNoAnalysisMarker)
	}

	var captions []string
	for _, frame := range frames {
		instruction := fmt.Sprintf(
			"This is a frame at %.0f seconds into a video. Describe it concisely in at most 100 words. "+
				"Mention any visible text, equipment identifiers, or visible problems.",
			frame.TimestampSec,
		)
		caption, err := e.captioner.Caption(ctx, frame.JPEG, instruction)
		if err != nil {
			e.logger.Warnw("frame caption failed", "timestamp_sec", frame.TimestampSec, "error", err)
			continue
		}
		captions = append(captions, fmt.Sprintf("[t=%.0fs] %s", frame.TimestampSec, caption))
	}

	if len(captions) == 0 {
		return TextFragment(VideoNoAnalysisMarker)
	}
	return TextFragment("[video] " + strings.Join(captions, "\n"))
}

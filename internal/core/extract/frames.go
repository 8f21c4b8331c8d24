package extract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// Frame is one sampled video frame, decoded to a standalone JPEG.
type Frame struct {
	TimestampSec float64
	JPEG         []byte
}

// SampleFrames pulls evenly-spaced frames out of a video container. The frame
// budget is maxFrames regardless of video length; if the container reports no
// frame count or frame rate, the result is empty rather than an error.
func SampleFrames(ctx context.Context, data []byte, interval time.Duration, maxFrames int, logger *logging.Logger) []Frame {
	tmp, err := os.CreateTemp("", "vectora-video-*.bin")
	if err != nil {
		logger.Warnw("video temp file failed", "error", err)
		return nil
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		logger.Warnw("video temp write failed", "error", err)
		return nil
	}
	tmp.Close()

	totalFrames, fps, err := probeVideo(tmp.Name())
	if err != nil {
		logger.Warnw("video probe failed", "error", err)
		return nil
	}

	indices := planFrames(totalFrames, fps, interval.Seconds(), maxFrames)
	if len(indices) == 0 {
		return nil
	}

	frames := make([]Frame, 0, len(indices))
	for _, idx := range indices {
		if ctx.Err() != nil {
			break
		}
		jpeg, err := decodeFrame(tmp.Name(), idx)
		if err != nil {
			logger.Warnw("frame decode failed", "frame_index", idx, "error", err)
			continue
		}
		frames = append(frames, Frame{
			TimestampSec: float64(idx) / fps,
			JPEG:         jpeg,
		})
	}
	return frames
}

// planFrames computes the frame indices to sample: one frame every
// round(fps*interval) frames starting at index 0, capped at maxFrames.
// Unknown totals or rates yield an empty plan.
func planFrames(totalFrames int, fps, intervalSec float64, maxFrames int) []int {
	if totalFrames <= 0 || fps <= 0 || intervalSec <= 0 || maxFrames <= 0 {
		return nil
	}

	step := int(math.Round(fps * intervalSec))
	if step < 1 {
		step = 1
	}

	indices := make([]int, 0, maxFrames)
	for idx := 0; idx < totalFrames && len(indices) < maxFrames; idx += step {
		indices = append(indices, idx)
	}
	return indices
}

// probeVideo reads container metadata for the first video stream.
func probeVideo(path string) (totalFrames int, fps float64, err error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe: %w", err)
	}

	stream := gjson.Get(out, `streams.#(codec_type=="video")`)
	if !stream.Exists() {
		return 0, 0, fmt.Errorf("no video stream in container")
	}

	totalFrames = int(stream.Get("nb_frames").Int())
	fps = parseRate(stream.Get("avg_frame_rate").String())
	if fps == 0 {
		fps = parseRate(stream.Get("r_frame_rate").String())
	}
	return totalFrames, fps, nil
}

// parseRate parses an ffprobe rational rate such as "30/1" or "30000/1001".
func parseRate(rate string) float64 {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		f, _ := strconv.ParseFloat(rate, 64)
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// decodeFrame extracts exactly one frame by index as JPEG bytes.
func decodeFrame(path string, frameIndex int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	err := ffmpeg.Input(path).
		Filter("select", ffmpeg.Args{fmt.Sprintf("gte(n,%d)", frameIndex)}).
		Output("pipe:", ffmpeg.KwArgs{"vframes": 1, "format": "image2", "vcodec": "mjpeg"}).
		Silent(true).
		WithOutput(buf).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg frame %d: %w", frameIndex, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg frame %d: empty output", frameIndex)
	}
	return buf.Bytes(), nil
}

package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

func newTestVideoExtractor(cap *testCaptioner, frames []Frame) *VideoExtractor {
	e := NewVideoExtractor(cap, 3*time.Second, 10, logging.NewNop())
	e.sample = func(ctx context.Context, data []byte) []Frame {
		return frames
	}
	return e
}

func TestVideoExtractJoinsTimestampedCaptions(t *testing.T) {
	cap := &testCaptioner{caption: "truck at the loading bay"}
	e := newTestVideoExtractor(cap, []Frame{
		{TimestampSec: 0, JPEG: []byte{1}},
		{TimestampSec: 3, JPEG: []byte{2}},
		{TimestampSec: 6, JPEG: []byte{3}},
	})

	frag := e.Extract(context.Background(), []byte("video-bytes"))
	require.True(t, frag.OK)
	assert.Contains(t, frag.Text, "[t=0s] truck at the loading bay")
	assert.Contains(t, frag.Text, "[t=3s] truck at the loading bay")
	assert.Contains(t, frag.Text, "[t=6s] truck at the loading bay")
	assert.Equal(t, 3, cap.calls)

	// Each frame's instruction carries its own timestamp.
	assert.Contains(t, cap.instructions[1], "3 seconds")
}

func TestVideoExtractPartialCaptionFailures(t *testing.T) {
	cap := &testCaptioner{caption: "conveyor running", failFirstN: 1}
	e := newTestVideoExtractor(cap, []Frame{
		{TimestampSec: 0, JPEG: []byte{1}},
		{TimestampSec: 3, JPEG: []byte{2}},
	})

	frag := e.Extract(context.Background(), []byte("video-bytes"))
	require.True(t, frag.OK)
	assert.NotContains(t, frag.Text, "[t=0s]")
	assert.Contains(t, frag.Text, "[t=3s] conveyor running")
}

func TestVideoExtractNoFramesSentinel(t *testing.T) {
	cap := &testCaptioner{caption: "unused"}
	e := newTestVideoExtractor(cap, nil)

	frag := e.Extract(context.Background(), []byte("not-a-video"))
	require.True(t, frag.OK)
	assert.Equal(t, VideoNoAnalysisMarker, frag.Text)
	assert.Zero(t, cap.calls)
}

func TestVideoExtractAllCaptionsFailSentinel(t *testing.T) {
	cap := &testCaptioner{err: errors.New("inference down")}
	e := newTestVideoExtractor(cap, []Frame{{TimestampSec: 0, JPEG: []byte{1}}})

	frag := e.Extract(context.Background(), []byte("video-bytes"))
	require.True(t, frag.OK)
	assert.Equal(t, VideoNoAnalysisMarker, frag.Text)
}

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// testCaptioner implements core.Captioner for tests.
type testCaptioner struct {
	caption     string
	err         error
	failFirstN  int
	calls       int
	instructions []string
}

func (c *testCaptioner) Caption(ctx context.Context, image []byte, instruction string) (string, error) {
	c.calls++
	c.instructions = append(c.instructions, instruction)
	if c.err != nil {
		return "", c.err
	}
	if c.calls <= c.failFirstN {
		return "", errors.New("inference unavailable")
	}
	return c.caption, nil
}

func TestImageExtract(t *testing.T) {
	cap := &testCaptioner{caption: "a slurry pump with a visible leak"}
	e := NewImageExtractor(cap, logging.NewNop())

	frag := e.Extract(context.Background(), []byte{0xFF, 0xD8, 0xFF})
	assert.True(t, frag.OK)
	assert.Equal(t, "[image] a slurry pump with a visible leak", frag.Text)
	assert.Equal(t, 1, cap.calls)
}

func TestImageExtractInferenceFailure(t *testing.T) {
	cap := &testCaptioner{err: errors.New("transport down")}
	e := NewImageExtractor(cap, logging.NewNop())

	frag := e.Extract(context.Background(), []byte{0xFF, 0xD8, 0xFF})
	assert.False(t, frag.OK)
	assert.Empty(t, frag.Text)
}

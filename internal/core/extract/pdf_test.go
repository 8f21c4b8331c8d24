package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

func TestPDFExtractMalformed(t *testing.T) {
	e := NewPDFExtractor(logging.NewNop())

	frag := e.Extract(context.Background(), []byte("%PDF-1.7 truncated garbage"))
	assert.False(t, frag.OK)
}

func TestPDFExtractNeverPanics(t *testing.T) {
	e := NewPDFExtractor(logging.NewNop())

	inputs := [][]byte{
		nil,
		{},
		[]byte("completely unrelated bytes"),
		append([]byte("%PDF-1.4\n"), make([]byte, 64)...),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			frag := e.Extract(context.Background(), in)
			assert.False(t, frag.OK)
		})
	}
}

package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmcalero-dev/Vectora/internal/core/attachment"
	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// fixedExtractor returns a canned fragment.
type fixedExtractor struct {
	frag Fragment
}

func (f *fixedExtractor) Extract(ctx context.Context, data []byte) Fragment {
	return f.frag
}

func TestSetExtractUnknownKind(t *testing.T) {
	s := NewSet(&testCaptioner{caption: "x"}, Options{}, logging.NewNop())

	frag := s.Extract(context.Background(), attachment.KindUnknown, []byte("anything"))
	assert.False(t, frag.OK)
}

func TestSetExtractAppliesFragmentCap(t *testing.T) {
	long := strings.Repeat("x", FragmentCap+1234)
	s := &Set{byKind: map[attachment.Kind]Extractor{
		attachment.KindPDF: &fixedExtractor{frag: TextFragment(long)},
	}}

	frag := s.Extract(context.Background(), attachment.KindPDF, nil)
	assert.True(t, frag.OK)
	assert.Len(t, frag.Text, FragmentCap)
	assert.Equal(t, long[:FragmentCap], frag.Text)
}

func TestSetExtractDoesNotCapFailedFragments(t *testing.T) {
	s := &Set{byKind: map[attachment.Kind]Extractor{
		attachment.KindPDF: &fixedExtractor{frag: None()},
	}}

	frag := s.Extract(context.Background(), attachment.KindPDF, nil)
	assert.False(t, frag.OK)
	assert.Empty(t, frag.Text)
}

func TestNewSetCoversAllKnownKinds(t *testing.T) {
	s := NewSet(&testCaptioner{caption: "x"}, Options{FrameInterval: time.Second, MaxFrames: 2}, logging.NewNop())

	for _, k := range []attachment.Kind{
		attachment.KindImage,
		attachment.KindVideo,
		attachment.KindPDF,
		attachment.KindWord,
		attachment.KindExcel,
		attachment.KindPowerPoint,
	} {
		_, ok := s.byKind[k]
		assert.True(t, ok, "missing extractor for kind %s", k)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "ññ", Truncate("ñññ", 2))
}

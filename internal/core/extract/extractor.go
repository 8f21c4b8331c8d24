// Package extract turns heterogeneous attachment binaries into bounded text
// fragments. One extractor exists per attachment kind; all of them share the
// same contract: malformed or unreadable input degrades to an empty fragment
// and a logged diagnostic, never an error that could fail the record.
package extract

import (
	"context"
	"time"

	"github.com/jmcalero-dev/Vectora/internal/core"
	"github.com/jmcalero-dev/Vectora/internal/core/attachment"
	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// FragmentCap is the maximum number of characters a single extracted
// fragment may contribute downstream, regardless of source size.
const FragmentCap = 3000

// Fragment is the ephemeral result of one extractor run. OK=false means
// "extraction failed, keep original text only". An OK fragment may still be
// a sentinel marker (e.g. a PDF with no extractable text).
type Fragment struct {
	Text string
	OK   bool
}

// TextFragment wraps extracted text in an OK fragment.
func TextFragment(text string) Fragment {
	return Fragment{Text: text, OK: true}
}

// None is the "no extracted content" value.
func None() Fragment {
	return Fragment{}
}

// Extractor is the per-kind extraction strategy.
type Extractor interface {
	Extract(ctx context.Context, data []byte) Fragment
}

// Set holds one extractor per supported attachment kind and dispatches on the
// kind resolved upstream. The per-fragment cap is enforced here so no single
// strategy can forget it.
type Set struct {
	byKind map[attachment.Kind]Extractor
}

// Options tunes the video sampling strategy.
type Options struct {
	FrameInterval time.Duration
	MaxFrames     int
}

// NewSet wires the full extractor set around the shared caption collaborator.
func NewSet(captioner core.Captioner, opts Options, logger *logging.Logger) *Set {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 3 * time.Second
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = 10
	}
	return &Set{
		byKind: map[attachment.Kind]Extractor{
			attachment.KindImage:      NewImageExtractor(captioner, logger),
			attachment.KindVideo:      NewVideoExtractor(captioner, opts.FrameInterval, opts.MaxFrames, logger),
			attachment.KindPDF:        NewPDFExtractor(logger),
			attachment.KindWord:       NewWordExtractor(logger),
			attachment.KindExcel:      NewExcelExtractor(logger),
			attachment.KindPowerPoint: NewPowerPointExtractor(logger),
		},
	}
}

// Extract dispatches to the strategy for kind and caps the result. Unknown
// kinds yield an empty fragment.
func (s *Set) Extract(ctx context.Context, kind attachment.Kind, data []byte) Fragment {
	ex, ok := s.byKind[kind]
	if !ok {
		return None()
	}
	frag := ex.Extract(ctx, data)
	if frag.OK {
		frag.Text = Truncate(frag.Text, FragmentCap)
	}
	return frag
}

// Truncate tail-cuts s to at most n characters, keeping the prefix.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

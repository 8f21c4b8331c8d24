package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	pdflib "github.com/ledongthuc/pdf"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// PDFNoTextMarker distinguishes "processed, nothing to extract" (common for
// scanned/image-only PDFs) from an extractor failure.
const PDFNoTextMarker = "[pdf attachment: no extractable text]"

// PDFExtractor runs a fast structural pass over all pages and falls back to
// the slower layout-aware converter when the fast pass comes back empty.
type PDFExtractor struct {
	logger *logging.Logger
}

func NewPDFExtractor(logger *logging.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) Fragment {
	text, fastErr := fastPDFText(data)
	if fastErr != nil {
		e.logger.Debugw("pdf fast pass failed", "error", fastErr)
	}

	if strings.TrimSpace(text) == "" {
		res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", false)
		if err != nil {
			if fastErr != nil {
				e.logger.Warnw("pdf extraction failed", "fast_error", fastErr, "fallback_error", err)
				return None()
			}
			e.logger.Debugw("pdf fallback pass failed", "error", err)
		} else {
			text = res.Body
		}
	}

	if strings.TrimSpace(text) == "" {
		return TextFragment(PDFNoTextMarker)
	}
	return TextFragment(text)
}

// fastPDFText extracts plain text page by page. The underlying reader panics
// on some malformed files, so the pass is fenced with a recover and the
// caller falls through to the layout-aware converter.
func fastPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

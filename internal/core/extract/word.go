package extract

import (
	"bytes"
	"context"
	"strings"

	"code.sajari.com/docconv"
	"github.com/fumiama/go-docx"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// WordExtractor emits paragraph text in document order, then each table's
// rows as pipe-delimited lines. Legacy .doc files that the structured parser
// rejects go through the generic converter instead.
type WordExtractor struct {
	logger *logging.Logger
}

func NewWordExtractor(logger *logging.Logger) *WordExtractor {
	return &WordExtractor{logger: logger}
}

func (e *WordExtractor) Extract(ctx context.Context, data []byte) Fragment {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Debugw("docx parse failed, trying generic converter", "error", err)
		return e.fallback(data)
	}

	var (
		b      strings.Builder
		tables []*docx.Table
	)
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			if t := strings.TrimSpace(v.String()); t != "" {
				b.WriteString(t)
				b.WriteString("\n")
			}
		case *docx.Table:
			tables = append(tables, v)
		}
	}

	for _, table := range tables {
		for _, row := range table.TableRows {
			cells := make([]string, 0, len(row.TableCells))
			for _, cell := range row.TableCells {
				var cb strings.Builder
				for _, p := range cell.Paragraphs {
					cb.WriteString(p.String())
				}
				cells = append(cells, strings.TrimSpace(cb.String()))
			}
			b.WriteString(strings.Join(cells, "|"))
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return e.fallback(data)
	}
	return TextFragment(b.String())
}

func (e *WordExtractor) fallback(data []byte) Fragment {
	res, err := docconv.Convert(bytes.NewReader(data), "application/msword", false)
	if err != nil {
		e.logger.Warnw("word extraction failed", "error", err)
		return None()
	}
	if strings.TrimSpace(res.Body) == "" {
		return None()
	}
	return TextFragment(res.Body)
}

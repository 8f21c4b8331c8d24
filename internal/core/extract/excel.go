package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

// ExcelRowCap bounds how many rows per sheet make it into the fragment.
const ExcelRowCap = 100

// ExcelTruncatedMarker is appended when a sheet exceeds ExcelRowCap.
const ExcelTruncatedMarker = "[content truncated]"

// ExcelExtractor emits a header per sheet followed by each row as
// pipe-delimited cell values, blank cells rendered as empty strings.
type ExcelExtractor struct {
	logger *logging.Logger
}

func NewExcelExtractor(logger *logging.Logger) *ExcelExtractor {
	return &ExcelExtractor{logger: logger}
}

func (e *ExcelExtractor) Extract(ctx context.Context, data []byte) Fragment {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		e.logger.Warnw("excel open failed", "error", err)
		return None()
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			e.logger.Warnw("excel sheet read failed", "sheet", sheet, "error", err)
			continue
		}

		b.WriteString(fmt.Sprintf("=== Sheet: %s ===\n", sheet))
		for i, row := range rows {
			if i >= ExcelRowCap {
				b.WriteString(ExcelTruncatedMarker)
				b.WriteString("\n")
				break
			}
			b.WriteString(strings.Join(row, "|"))
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return None()
	}
	return TextFragment(b.String())
}

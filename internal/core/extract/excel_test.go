package extract

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jmcalero-dev/Vectora/internal/logging"
)

func buildWorkbook(t *testing.T, rows int) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r := 1; r <= rows; r++ {
		require.NoError(t, f.SetCellValue("Sheet1", fmt.Sprintf("A%d", r), fmt.Sprintf("item-%d", r)))
		require.NoError(t, f.SetCellValue("Sheet1", fmt.Sprintf("C%d", r), r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExcelExtractRowCap(t *testing.T) {
	// 250 data rows must come out as exactly 100 rows plus one marker line.
	data := buildWorkbook(t, 250)

	e := NewExcelExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), data)
	require.True(t, frag.OK)

	lines := strings.Split(strings.TrimRight(frag.Text, "\n"), "\n")
	assert.Equal(t, "=== Sheet: Sheet1 ===", lines[0])

	var dataLines, markerLines int
	for _, l := range lines[1:] {
		if l == ExcelTruncatedMarker {
			markerLines++
		} else {
			dataLines++
		}
	}
	assert.Equal(t, ExcelRowCap, dataLines)
	assert.Equal(t, 1, markerLines)
}

func TestExcelExtractBlankCells(t *testing.T) {
	// Column B is empty: the row renders the blank cell as an empty string
	// between the delimiters.
	data := buildWorkbook(t, 3)

	e := NewExcelExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), data)
	require.True(t, frag.OK)
	assert.Contains(t, frag.Text, "item-1||1")
}

func TestExcelExtractSmallSheetNoMarker(t *testing.T) {
	data := buildWorkbook(t, 5)

	e := NewExcelExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), data)
	require.True(t, frag.OK)
	assert.NotContains(t, frag.Text, ExcelTruncatedMarker)
}

func TestExcelExtractMalformed(t *testing.T) {
	e := NewExcelExtractor(logging.NewNop())
	frag := e.Extract(context.Background(), []byte("this is not a workbook"))
	assert.False(t, frag.OK)
}

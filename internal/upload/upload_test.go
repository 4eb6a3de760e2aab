// internal/upload/upload_test.go
package upload

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestParseTabSeparated(t *testing.T) {
	content := " Period \tSUM\tcategory_id\n" +
		"01.01.2024\t100000\t3\n" +
		"01.02.2024\t0\t4\n"

	rows, err := Parse("plans.csv", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Headers are trimmed and lower-cased before matching.
	assert.Equal(t, "01.01.2024", rows[0]["period"])
	assert.Equal(t, "100000", rows[0]["sum"])
	assert.Equal(t, "3", rows[0]["category_id"])
	assert.Equal(t, "0", rows[1]["sum"])
}

func TestParseSkipsEmptyRows(t *testing.T) {
	content := "period\tsum\tcategory_id\n" +
		"01.01.2024\t100\t3\n" +
		"\t\t\n" +
		"01.02.2024\t200\t4\n"

	rows, err := Parse("plans.tsv", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "01.02.2024", rows[1]["period"])
}

func TestParseMissingColumns(t *testing.T) {
	content := "period\tamount\n01.01.2024\t100\n"

	_, err := Parse("plans.tsv", strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period, sum, category_id")
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse("plans.tsv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestParseRepairsWindows1251(t *testing.T) {
	utf8Content := "period\tsum\tcategory_id\tкомментарий\n" +
		"01.01.2024\t100\t3\tвыдача\n"
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(utf8Content))
	require.NoError(t, err)

	rows, parseErr := Parse("plans.tsv", bytes.NewReader(encoded))
	require.NoError(t, parseErr)
	require.Len(t, rows, 1)
	assert.Equal(t, "выдача", rows[0]["комментарий"])
	assert.Equal(t, "100", rows[0]["sum"])
}

func TestParseExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"period", "sum", "category_id"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"01.01.2024", "50000", "3"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"01.02.2024", "60000", "4"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Parse("plans.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "50000", rows[0]["sum"])
	assert.Equal(t, "01.02.2024", rows[1]["period"])
}

func TestParseGarbageAsExcel(t *testing.T) {
	_, err := Parse("plans.xlsx", strings.NewReader("definitely not a workbook"))
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "01.01.2024", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{in: "15/06/2024", want: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{in: "01-02-2024", want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-01 00:00:00", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "March 1st", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

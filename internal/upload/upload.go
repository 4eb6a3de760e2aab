// internal/upload/upload.go
package upload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ErrBadFormat means the file could not be read as a spreadsheet or
// tab-separated text at all.
var ErrBadFormat = errors.New("Invalid file format. Please upload an Excel or tab-separated CSV file.")

// RequiredColumns are the headers a plans upload must carry, after
// trimming and lower-casing.
var RequiredColumns = []string{"period", "sum", "category_id"}

// Row maps a normalized column name to the raw cell text.
type Row map[string]string

// Parse reads a tabular upload in file order. Excel files are picked by
// extension; everything else is treated as tab-separated text. Headers are
// trimmed and lower-cased, fully empty rows are skipped.
func Parse(filename string, r io.Reader) ([]Row, error) {
	var records [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		records, err = readExcel(r)
	default:
		records, err = readTabSeparated(r)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrBadFormat
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, required := range RequiredColumns {
		found := false
		for _, h := range headers {
			if h == required {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("The file must contain the following columns: %s",
				strings.Join(RequiredColumns, ", "))
		}
	}

	var rows []Row
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			row[h] = cell
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrBadFormat
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrBadFormat
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrBadFormat
	}
	return rows, nil
}

func readTabSeparated(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	data = fixEncoding(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, ErrBadFormat
	}
	return records, nil
}

// fixEncoding repairs files exported from legacy systems: anything that is
// not valid UTF-8 gets a windows-1251 decoding attempt.
func fixEncoding(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	fixed, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err == nil && utf8.Valid(fixed) {
		return fixed
	}
	return data
}

// dateLayouts are tried in order: day-first forms the upstream bank dumps
// use, then ISO.
var dateLayouts = []string{
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseDate parses a cell as a calendar date, day-first.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

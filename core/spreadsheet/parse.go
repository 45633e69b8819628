package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"store-ops/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format (expected .xlsx or .csv)")

// Parse reads the first sheet of an .xlsx workbook or a .csv file into rows.
// The first non-empty line is the header; row numbers are 1-based sheet lines.
func Parse(r io.Reader, filename string) ([]reconcile.Row, error) {
	var (
		lines [][]string
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		lines, err = readWorkbook(r)
	case ".csv":
		lines, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	return toRows(lines)
}

// ContentType returns the MIME type used when archiving filename.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".xlsm":
		return "application/vnd.ms-excel.sheet.macroEnabled.12"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, reconcile.ErrNoRows
	}

	// Raw values keep dates as serial numbers instead of locale-formatted text.
	lines, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return lines, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var lines [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		// csv.Reader skips blank lines; pad so row numbers keep matching the file.
		line, _ := cr.FieldPos(0)
		for len(lines) < line-1 {
			lines = append(lines, nil)
		}
		lines = append(lines, rec)
	}
	return lines, nil
}

func toRows(lines [][]string) ([]reconcile.Row, error) {
	headerAt := -1
	for i, line := range lines {
		if !blank(line) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, reconcile.ErrNoRows
	}

	header := make([]string, len(lines[headerAt]))
	seen := make(map[string]int)
	for i, label := range lines[headerAt] {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		folded := reconcile.Fold(label)
		if col, dup := seen[folded]; dup {
			return nil, fmt.Errorf("duplicate column %q (columns %d and %d)", label, col+1, i+1)
		}
		seen[folded] = i
		header[i] = label
	}

	var rows []reconcile.Row
	for i := headerAt + 1; i < len(lines); i++ {
		if blank(lines[i]) {
			continue
		}
		values := make(map[string]any, len(header))
		for col, label := range header {
			if label == "" {
				continue
			}
			var v any
			if col < len(lines[i]) {
				v = lines[i][col]
			}
			values[label] = v
		}
		rows = append(rows, reconcile.NewRow(i+1, values))
	}

	if len(rows) == 0 {
		return nil, reconcile.ErrNoRows
	}
	return rows, nil
}

func blank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

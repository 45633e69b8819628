package spreadsheet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"store-ops/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, lines [][]any) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &line))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParse_Workbook(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Store IFS", "Hurdle Date", "Hurdle Amount"},
		{"S01", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 1500.5},
		{},
		{"S02", "2024-02-01", "2,000"},
	})

	rows, err := Parse(buf, "Hurdles.XLSX")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 4, rows[1].Number)

	date, ok, err := rows[0].Date("hurdle date")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)

	amount, _, err := rows[1].Decimal("Hurdle Amount")
	require.NoError(t, err)
	assert.Equal(t, "2000", amount.String())

	code, _ := rows[1].String("Store IFS")
	assert.Equal(t, "S02", code)
}

func TestParse_CSV(t *testing.T) {
	data := "\xef\xbb\xbfStore IFS,Item Category,Rate,\n" +
		"S01, Grocery ,1.5\n" +
		"\n" +
		"S02,Apparel,2.25,ignored\n"

	rows, err := Parse(strings.NewReader(data), "rates.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 4, rows[1].Number)

	cat, _ := rows[0].String("item category")
	assert.Equal(t, "Grocery", cat)
	assert.Len(t, rows[1].Raw(), 3)
}

func TestParse_HeaderNotOnFirstLine(t *testing.T) {
	rows, err := Parse(strings.NewReader(",,\nEmployee Number,First Name\nE1,Ann\n"), "roster.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Number)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		filename string
		target   error
		contains string
	}{
		{"Unsupported", "x", "roster.pdf", ErrUnsupportedFormat, ""},
		{"HeaderOnly", "Store IFS,Rate\n", "rates.csv", reconcile.ErrNoRows, ""},
		{"Empty", "", "rates.csv", reconcile.ErrNoRows, ""},
		{"DuplicateColumn", "Rate, rate\n1,2\n", "rates.csv", nil, `duplicate column "rate"`},
		{"NotAWorkbook", "plain text", "rates.xlsx", nil, "open workbook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.data), tt.filename)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", ContentType("a.CSV"))
	assert.Equal(t, "application/octet-stream", ContentType("a.txt"))
}

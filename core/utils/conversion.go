package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order when a cell holds a textual date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"02-Jan-2006",
	"Jan 2006",
	"January 2006",
	"2006-01",
}

// ToString converts a raw cell value to a trimmed string.
// Whole floats are rendered without a fractional part so that numeric codes
// read from JSON (e.g. 1001.0) match their textual form.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return ToString(float64(v))
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// ToDecimal converts a raw cell value to a decimal.
// Thousands separators are accepted in textual values.
func ToDecimal(val any) (decimal.Decimal, error) {
	switch v := val.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		s := strings.ReplaceAll(ToString(v), ",", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%q is not a number", ToString(v))
		}
		return d, nil
	}
}

// ToDate converts a raw cell value to a UTC date (time of day truncated).
// Numeric values are treated as Excel serial dates.
func ToDate(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return truncateDay(v), nil
	case float64:
		return excelSerial(v)
	case int:
		return excelSerial(float64(v))
	case int64:
		return excelSerial(float64(v))
	}

	s := ToString(val)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return excelSerial(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognised date", s)
}

// MonthStart returns the first day of the month of t in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func excelSerial(f float64) (time.Time, error) {
	if f <= 0 {
		return time.Time{}, fmt.Errorf("%v is not a valid spreadsheet date", f)
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, err
	}
	return truncateDay(t), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

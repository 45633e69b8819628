package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"Trimmed", "  E-100 ", "E-100"},
		{"WholeFloat", float64(1001), "1001"},
		{"Fraction", 12.5, "12.5"},
		{"Bytes", []byte(" x "), "x"},
		{"Int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestToDecimal(t *testing.T) {
	d, err := ToDecimal("1,250.75")
	assert.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1250.75")))

	d, err = ToDecimal(float64(10))
	assert.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(10)))

	_, err = ToDecimal("ten")
	assert.Error(t, err)
}

func TestToDate(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
	}{
		{"ISO", "2024-01-15"},
		{"Slashes", "2024/01/15"},
		{"US", "01/15/2024"},
		{"WithTime", "2024-01-15 13:45:00"},
		{"ExcelSerialNumber", float64(45306)},
		{"ExcelSerialText", "45306"},
		{"TimeValue", time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDate(tt.in)
			assert.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	_, err := ToDate("not a date")
	assert.Error(t, err)

	_, err = ToDate("")
	assert.Error(t, err)
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2024, time.March, 19, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), got)
}

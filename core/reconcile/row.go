package reconcile

import (
	"encoding/json"
	"strings"
	"time"

	"store-ops/core/utils"

	"github.com/shopspring/decimal"
)

// Row is one parsed spreadsheet line.
// Column labels are matched case-insensitively with surrounding whitespace ignored.
type Row struct {
	// Number is the 1-based line in the source sheet, header offset applied.
	Number int

	raw   map[string]any
	cells map[string]any
}

// NewRow wraps raw cell values keyed by column label.
func NewRow(number int, values map[string]any) Row {
	cells := make(map[string]any, len(values))
	for label, v := range values {
		cells[Fold(label)] = v
	}
	return Row{Number: number, raw: values, cells: cells}
}

// Value returns the raw cell for label.
func (r Row) Value(label string) (any, bool) {
	v, ok := r.cells[Fold(label)]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the trimmed text of label; ok is false when missing or blank.
func (r Row) String(label string) (string, bool) {
	v, ok := r.Value(label)
	if !ok {
		return "", false
	}
	s := utils.ToString(v)
	return s, s != ""
}

// Has reports whether label holds a non-blank value.
func (r Row) Has(label string) bool {
	_, ok := r.String(label)
	return ok
}

// Decimal parses label as a decimal number.
func (r Row) Decimal(label string) (decimal.Decimal, bool, error) {
	v, ok := r.Value(label)
	if !ok || utils.ToString(v) == "" {
		return decimal.Zero, false, nil
	}
	d, err := utils.ToDecimal(v)
	return d, true, err
}

// Date parses label as a calendar date in UTC.
func (r Row) Date(label string) (time.Time, bool, error) {
	v, ok := r.Value(label)
	if !ok || utils.ToString(v) == "" {
		return time.Time{}, false, nil
	}
	t, err := utils.ToDate(v)
	return t, true, err
}

// List splits label on commas and semicolons, dropping blanks.
func (r Row) List(label string) []string {
	s, ok := r.String(label)
	if !ok {
		return nil
	}
	fields := strings.FieldsFunc(s, func(c rune) bool { return c == ',' || c == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Raw returns the cells keyed by their original labels.
func (r Row) Raw() map[string]any {
	if r.raw == nil {
		return map[string]any{}
	}
	return r.raw
}

// MarshalJSON encodes the raw cells.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Raw())
}

// DistinctFolded collects the distinct non-blank values of label across rows, folded
// the way Key folds them. Loaders use it to restrict queries to keys present in the
// batch (LOWER(col) IN ?), so a value that matches an index key is always fetched.
func DistinctFolded(rows []Row, label string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, row := range rows {
		s, ok := row.String(label)
		if !ok {
			continue
		}
		s = Fold(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

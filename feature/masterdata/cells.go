package masterdata

import (
	"time"

	"store-ops/core/reconcile"

	"github.com/shopspring/decimal"
)

// ParseDate reads label as a date, rejecting unparseable values.
func ParseDate(row reconcile.Row, label string) (time.Time, error) {
	raw, _ := row.String(label)
	date, _, err := row.Date(label)
	if err != nil {
		return time.Time{}, reconcile.Reject(label, raw, "Invalid %s '%s'", label, raw)
	}
	return date, nil
}

// ParseAmount reads label as a non-negative decimal.
func ParseAmount(row reconcile.Row, label string) (decimal.Decimal, error) {
	raw, _ := row.String(label)
	amount, _, err := row.Decimal(label)
	if err != nil {
		return decimal.Zero, reconcile.Reject(label, raw, "Invalid %s '%s'", label, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, reconcile.Reject(label, raw, "%s must not be negative", label)
	}
	return amount, nil
}

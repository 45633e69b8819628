// Package utils provides conversion helpers for untyped spreadsheet cells.
// Values arrive as strings, JSON numbers or nil; these helpers turn them into
// strings, integers, decimals, dates and booleans with explicit errors.
package utils

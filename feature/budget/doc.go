// Package budget imports monthly sales budgets per store and item category.
//
// Budgets are append-only: a correction retires the active row and inserts a new
// one. Rows synced from the upstream budget repository cannot be changed by import.
package budget

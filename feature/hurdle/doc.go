// Package hurdle imports daily store sales targets, one row per store and date.
package hurdle

// Package transform reshapes raw provider rows into display records: it picks
// and renames columns, coerces numeric columns to integers, and formats
// durations as HH:MM:SS.mmm.
package transform

package utils

import (
	"math"
	"strconv"
)

// The parsers below accept only canonical text: formatting the parsed value
// must give back s exactly. Otherwise distinct cells such as "01234" and
// "1234", or "TRUE" and "true", would become equal values.

// ToInt parses s as a base-10 integer.
func ToInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil || strconv.FormatInt(i, 10) != s {
		return 0, false
	}
	return i, true
}

// ToFloat parses s as a finite floating point number.
func ToFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if strconv.FormatFloat(f, 'f', -1, 64) != s && strconv.FormatFloat(f, 'g', -1, 64) != s {
		return 0, false
	}
	return f, true
}

// ToBool parses "true" and "false".
func ToBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// InferColumn converts the textual cells of one column into typed values.
// The whole column is typed together so that every record sees the same kind:
// integers if every non-empty cell is an integer, then floats, then booleans,
// and strings otherwise. A single non-canonical cell keeps the column as text.
// Empty cells become nil.
func InferColumn(cells []string) []any {
	out := make([]any, len(cells))

	switch {
	case allCells(cells, func(s string) bool { _, ok := ToInt(s); return ok }):
		for i, c := range cells {
			if c != "" {
				out[i], _ = ToInt(c)
			}
		}
	case allCells(cells, func(s string) bool { _, ok := ToFloat(s); return ok }):
		for i, c := range cells {
			if c != "" {
				out[i], _ = ToFloat(c)
			}
		}
	case allCells(cells, func(s string) bool { _, ok := ToBool(s); return ok }):
		for i, c := range cells {
			if c != "" {
				out[i], _ = ToBool(c)
			}
		}
	default:
		for i, c := range cells {
			if c != "" {
				out[i] = c
			}
		}
	}
	return out
}

// allCells reports whether ok holds for every non-empty cell and at least one cell is non-empty.
func allCells(cells []string, ok func(string) bool) bool {
	seen := false
	for _, c := range cells {
		if c == "" {
			continue
		}
		if !ok(c) {
			return false
		}
		seen = true
	}
	return seen
}

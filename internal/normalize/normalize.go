// =============================================================================
// Price Update Preparation Tool - Normalizer
// =============================================================================
//
// This module canonicalizes raw cell values before they enter the pipeline.
// User input arrives as free-form text (pasted from Excel, exported from other
// tools), so SKUs and prices need to be normalized into comparable forms
// before lookup and validation:
//   - SKU: trimmed, with spreadsheet null artifacts ("nan", "none") collapsed
//     to the empty string
//   - Price: currency glyphs and thousand separators stripped, then parsed
//     as a decimal number
//   - Filename: user-supplied download names reduced to a safe form
//
// All functions here are pure and total; they never return errors, only
// canonical values (plus an ok flag for price parsing).
//
// =============================================================================

package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Spreadsheet exports stringify missing cells as "nan" or "none". Both are
// treated as empty, case-insensitively.
var nullLiterals = map[string]bool{
	"nan":  true,
	"none": true,
}

var (
	filenameStripRe    = regexp.MustCompile(`[^\w\- ]+`)
	filenameCollapseRe = regexp.MustCompile(`\s+`)
)

// SKU canonicalizes a raw SKU cell value.
//
// It trims surrounding whitespace and maps null-like literals ("nan", "none",
// any letter case) to the empty string. An empty result means "no SKU".
func SKU(raw string) string {
	s := strings.TrimSpace(raw)
	if nullLiterals[strings.ToLower(s)] {
		return ""
	}
	return s
}

// Price parses a raw price cell value into a number.
//
// Commas and the currency glyphs "₹" and "$" are stripped before parsing, so
// pasted values like "₹1,200" or "$ 9.99" parse cleanly. The second return
// value is false when the cell is blank, a null literal, or not numeric.
func Price(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || nullLiterals[strings.ToLower(s)] {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	// ParseFloat accepts "NaN" and "Inf"; neither is a usable price.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatPrice renders a numeric price the way it should appear in a cell:
// minimal decimal representation, no trailing zeros.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename reduces a user-supplied download name to a safe file name stem.
//
// Non-word characters other than hyphen and space are stripped, then runs of
// whitespace collapse to a single underscore. Returns "" when nothing
// survives, in which case callers fall back to a date-stamped default.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filenameStripRe.ReplaceAllString(name, "")
	name = filenameCollapseRe.ReplaceAllString(name, "_")
	return name
}

// EnsureXLSX appends the ".xlsx" suffix unless the name already carries it
// (case-insensitively).
func EnsureXLSX(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return name
	}
	return name + ".xlsx"
}

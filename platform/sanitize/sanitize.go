// Package sanitize provides text sanitization utilities for exported data.
package sanitize

import (
	"strings"
)

// formulaPrefixes are leading characters spreadsheet applications treat as
// the start of a formula.
const formulaPrefixes = "=+-@\t\r"

// SpreadsheetCell neutralises values that a spreadsheet would evaluate as a
// formula by prefixing them with a single quote. Other values are returned
// unchanged.
func SpreadsheetCell(s string) string {
	if s == "" || !strings.ContainsRune(formulaPrefixes, rune(s[0])) {
		return s
	}
	return "'" + s
}

package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpreadsheetCell(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"Ava":               "Ava",
		"=HYPERLINK(\"x\")": "'=HYPERLINK(\"x\")",
		"+1 555":            "'+1 555",
		"-10":               "'-10",
		"@SUM(A1)":          "'@SUM(A1)",
		"a=b":               "a=b",
	}
	for in, want := range cases {
		assert.Equal(t, want, SpreadsheetCell(in), "input %q", in)
	}
}

// Package textutil normalizes model output for downstream systems that only
// accept ASCII (PDF templating, legacy practice management imports).
package textutil

import "strings"

var asciiReplacer = strings.NewReplacer(
	"–", "-",    // en dash
	"—", "--",   // em dash
	"‘", "'",    // left single quote
	"’", "'",    // right single quote
	"“", `"`,    // left double quote
	"”", `"`,    // right double quote
	"…", "...",  // ellipsis
	" ", " ",    // non-breaking space
	"•", "*",    // bullet
	"°", " deg", // degree sign
)

// NormalizeToASCII rewrites common typographic Unicode characters to ASCII
// equivalents and drops any remaining bytes outside the printable ASCII
// range (tab and newline are kept).
func NormalizeToASCII(s string) string {
	s = asciiReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 0x20 && r < 0x7f) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

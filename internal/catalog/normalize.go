package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, drops combining marks and recomposes,
// turning "maçã" into "maca".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowers s, strips diacritics and removes every rune outside
// [a-z0-9\s]. Search matching compares normalized forms only, so "maca"
// finds "Maçã".
func Normalize(s string) string {
	s = strings.ToLower(s)

	stripped, _, err := transform.String(stripAccents, s)
	if err != nil {
		// Malformed input; match against the lowered original instead.
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

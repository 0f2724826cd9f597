package normalizer

import (
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks (é→e, à→a, ç→c) via NFD decomposition.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// isMn reports whether r is a nonspacing combining mark.
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

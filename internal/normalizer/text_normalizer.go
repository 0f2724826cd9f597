package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	rePunct  = regexp.MustCompile(`[^\w\s]`)
	reSpaces = regexp.MustCompile(`\s+`)
	reDigits = regexp.MustCompile(`\d+`)
)

// streetTypeAbbreviations maps each abbreviated street-type token to its canonical
// form. Keys are matched after NormalizeText, so dotted variants ("r.", "av.")
// arrive here with the dot already stripped.
var streetTypeAbbreviations = map[string]string{
	"r":           "rue",
	"rue":         "rue",
	"av":          "avenue",
	"ave":         "avenue",
	"avenue":      "avenue",
	"bd":          "boulevard",
	"blvd":        "boulevard",
	"boulevard":   "boulevard",
	"pl":          "place",
	"place":       "place",
	"imp":         "impasse",
	"impasse":     "impasse",
	"ch":          "chemin",
	"chemin":      "chemin",
	"rt":          "route",
	"route":       "route",
	"all":         "allee",
	"alle":        "allee",
	"allee":       "allee",
	"sq":          "square",
	"square":      "square",
	"pass":        "passage",
	"passage":     "passage",
	"crs":         "cours",
	"cours":       "cours",
	"q":           "quai",
	"quai":        "quai",
	"fbg":         "faubourg",
	"faubourg":    "faubourg",
	"esp":         "esplanade",
	"esplanade":   "esplanade",
	"lot":         "lotissement",
	"lotissement": "lotissement",
	"res":         "residence",
	"residence":   "residence",
}

// NormalizeText canonicalizes free text for comparison: lower-case, diacritics
// stripped, punctuation turned into spaces, whitespace collapsed.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	s := StripDiacritics(text)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = rePunct.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeStreetType normalizes the text and expands street-type abbreviations
// token by token ("58 r. alger" → "58 rue alger"). Unknown tokens pass through.
func NormalizeStreetType(text string) string {
	s := NormalizeText(text)
	if s == "" {
		return ""
	}
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if full, ok := streetTypeAbbreviations[w]; ok {
			out = append(out, full)
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// ExtractDigits returns every maximal digit run in text, in order.
func ExtractDigits(text string) []string {
	return reDigits.FindAllString(text, -1)
}

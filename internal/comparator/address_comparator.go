// Package comparator decides whether a structured address and a free-text
// address string describe the same premises. Numero, code postal and ville are
// administrative identifiers compared strictly after normalization; the street
// name is the only field carrying free-text noise (abbreviations, word order,
// typos) and the only one compared with tolerance.
package comparator

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/config"
	"github.com/prospect-fusion/app/models"
	"github.com/prospect-fusion/internal/external"
	"github.com/prospect-fusion/internal/normalizer"
)

// stopWords are filler tokens ignored during street token comparison and
// address-key building.
var stopWords = map[string]struct{}{
	"de": {}, "du": {}, "des": {}, "le": {}, "la": {}, "les": {},
	"et": {}, "ou": {}, "d": {}, "l": {},
}

var (
	reStrictAddress = regexp.MustCompile(`^(\d+)\s+(.+?),?\s+(\d{5})\s+(.+)$`)
	rePostalToken   = regexp.MustCompile(`^\d{5}$`)
	reNonDigit      = regexp.MustCompile(`\D`)
)

// Comparator performs the field-by-field comparison. Thresholds and weights
// come from the engine config but are plain fields, so tests can pin them.
type Comparator struct {
	thresholds   config.FieldThresholds
	weights      config.FieldWeights
	useLibpostal bool
	logger       *zap.Logger
}

// NewComparator builds a Comparator from the loaded engine config.
func NewComparator(logger *zap.Logger) *Comparator {
	return &Comparator{
		thresholds:   config.C.Thresholds,
		weights:      config.C.Weights,
		useLibpostal: config.C.UseLibpostal && external.Available(),
		logger:       logger,
	}
}

// Similarity computes a [0,1] string similarity as the max of Jaro-Winkler and
// length-normalized Levenshtein. Identical strings score 1.0; the two metrics
// cover transposition-heavy and deletion-heavy noise respectively.
func (c *Comparator) Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	lev := 1.0 - float64(dist)/float64(maxLen)
	if lev > jw {
		return lev
	}
	return jw
}

// CompareNumbers compares house numbers on their first digit run. A house
// number is either correct or wrong: no partial credit.
func (c *Comparator) CompareNumbers(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	digitsA := normalizer.ExtractDigits(a)
	digitsB := normalizer.ExtractDigits(b)
	if len(digitsA) == 0 && len(digitsB) == 0 {
		return 1.0
	}
	if len(digitsA) == 0 || len(digitsB) == 0 {
		return 0.0
	}
	if digitsA[0] == digitsB[0] {
		return 1.0
	}
	return 0.0
}

// CompareStreets scores two street names after street-type canonicalization.
// It takes the best of a whole-string similarity and a token-set similarity;
// the latter handles word reordering ("rue d'Alger" vs "Alger rue").
func (c *Comparator) CompareStreets(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	normA := normalizer.NormalizeStreetType(a)
	normB := normalizer.NormalizeStreetType(b)

	direct := c.Similarity(normA, normB)

	wordsA := dropStopWords(strings.Fields(normA))
	wordsB := dropStopWords(strings.Fields(normB))
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1.0
	}
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	var sum float64
	for _, wa := range wordsA {
		best := 0.0
		for _, wb := range wordsB {
			if s := c.Similarity(wa, wb); s > best {
				best = s
			}
		}
		sum += best
	}
	tokenSim := sum / float64(len(wordsA))

	if tokenSim > direct {
		return tokenSim
	}
	return direct
}

// ComparePostalCodes requires digit-for-digit equality.
func (c *Comparator) ComparePostalCodes(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	if reNonDigit.ReplaceAllString(a, "") == reNonDigit.ReplaceAllString(b, "") {
		return 1.0
	}
	return 0.0
}

// CompareCities requires equality after full text normalization.
func (c *Comparator) CompareCities(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	if normalizer.NormalizeText(a) == normalizer.NormalizeText(b) {
		return 1.0
	}
	return 0.0
}

// ParseAddressString splits a free-text address into structured components.
// It tries the strict "numero voie code_postal ville" pattern first, then a
// token scan for the 5-digit postal code, then libpostal when compiled in and
// enabled. Returns nil when nothing applies; callers treat that as "address
// fields stay empty", never as an error.
func (c *Comparator) ParseAddressString(text string) *models.Address {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if m := reStrictAddress.FindStringSubmatch(text); m != nil {
		return &models.Address{
			Numero:     m[1],
			Voie:       strings.TrimSpace(m[2]),
			CodePostal: m[3],
			Ville:      strings.TrimSpace(m[4]),
		}
	}

	parts := strings.Fields(text)
	if len(parts) >= 4 {
		postalIdx := -1
		for i, p := range parts {
			if rePostalToken.MatchString(p) {
				postalIdx = i
				break
			}
		}
		if postalIdx > 0 {
			return &models.Address{
				Numero:     strings.TrimRight(parts[0], ","),
				Voie:       strings.TrimRight(strings.Join(parts[1:postalIdx], " "), ","),
				CodePostal: parts[postalIdx],
				Ville:      strings.Join(parts[postalIdx+1:], " "),
			}
		}
	}

	if c.useLibpostal {
		if pa := external.ParseWithLibpostal(text); pa.Road != "" && (pa.Postcode != "" || pa.City != "") {
			addr, err := models.NewAddress(pa.HouseNumber, pa.Road, pa.Postcode, pa.City)
			if err == nil {
				return &addr
			}
		}
	}

	return nil
}

// CompareAddresses compares a structured address against a free-text one.
// The match decision is an AND of per-field gates (numero, code postal and
// ville exact; voie over its threshold); the weighted overall similarity is
// informational only and cannot rescue a failing strict field.
func (c *Comparator) CompareAddresses(addr models.Address, freeText string) models.ComparisonResult {
	parsed := c.ParseAddressString(freeText)
	if parsed == nil {
		c.logger.Debug("adresse non parsable", zap.String("free_text", freeText))
		return models.ComparisonResult{
			IsMatch:           false,
			OverallSimilarity: 0.0,
			Reason:            "adresse non parsable",
		}
	}

	scores := models.FieldScores{
		Numero:     c.CompareNumbers(addr.Numero, parsed.Numero),
		Voie:       c.CompareStreets(addr.Voie, parsed.Voie),
		CodePostal: c.ComparePostalCodes(addr.CodePostal, parsed.CodePostal),
		Ville:      c.CompareCities(addr.Ville, parsed.Ville),
	}

	overall := scores.Numero*c.weights.Numero +
		scores.Voie*c.weights.Voie +
		scores.CodePostal*c.weights.CodePostal +
		scores.Ville*c.weights.Ville

	isMatch := scores.Numero >= c.thresholds.Numero &&
		scores.Voie >= c.thresholds.Voie &&
		scores.CodePostal >= c.thresholds.CodePostal &&
		scores.Ville >= c.thresholds.Ville

	c.logger.Debug("comparaison adresse",
		zap.String("structured", addr.String()),
		zap.String("free_text", freeText),
		zap.Bool("is_match", isMatch),
		zap.Float64("overall", overall))

	return models.ComparisonResult{
		IsMatch:           isMatch,
		OverallSimilarity: overall,
		PerField:          scores,
		ParsedAddress:     parsed,
	}
}

// IsAddressMatch is the thin boolean wrapper over CompareAddresses.
func (c *Comparator) IsAddressMatch(addr models.Address, freeText string) bool {
	return c.CompareAddresses(addr, freeText).IsMatch
}

// AddressKey builds the normalized lookup key for a structured address:
// text normalization, street-type expansion and stop-word removal, so
// "58 rue Alger" and "58 rue d'Alger" collide.
func (c *Comparator) AddressKey(addr models.Address) string {
	return c.RawAddressKey(addr.Numero + " " + addr.Voie + " " + addr.CodePostal + " " + addr.Ville)
}

// RawAddressKey builds the same lookup key from a free-text address string.
func (c *Comparator) RawAddressKey(text string) string {
	words := dropStopWords(strings.Fields(normalizer.NormalizeStreetType(text)))
	return strings.Join(words, " ")
}

// Fingerprint derives a stable cache key for one comparison.
func (c *Comparator) Fingerprint(addr models.Address, freeText string) string {
	h := sha256.Sum256([]byte(addr.String() + "\x1f" + freeText))
	return fmt.Sprintf("sha256:%x", h)
}

func dropStopWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, skip := stopWords[w]; skip {
			continue
		}
		out = append(out, w)
	}
	return out
}

package models

// FieldScores carries the per-field similarity of one address comparison.
type FieldScores struct {
	Numero     float64 `json:"numero"`
	Voie       float64 `json:"voie"`
	CodePostal float64 `json:"code_postal"`
	Ville      float64 `json:"ville"`
}

// ComparisonResult is the outcome of comparing a structured address against a
// free-text address string. IsMatch is an AND of per-field gates, not a
// weighted cutoff: a high OverallSimilarity with one failing strict field is
// still a non-match.
type ComparisonResult struct {
	IsMatch           bool        `json:"is_match"`
	OverallSimilarity float64     `json:"overall_similarity"`
	PerField          FieldScores `json:"details"`
	ParsedAddress     *Address    `json:"parsed_address,omitempty"`
	Reason            string      `json:"reason,omitempty"`
}

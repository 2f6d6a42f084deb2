package index

import "regexp"

// #region source

// Source identifies which index produced a ranked hit.
type Source string

const (
	SourceLexical  Source = "lexical"
	SourceSemantic Source = "semantic"
)

// #endregion source

// #region segment

// Segment is an immutable unit of reference text, produced at index-build
// time and read-only thereafter.
type Segment struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Codes []string `json:"codes,omitempty"`
}

// #endregion segment

// #region ranked-hit

// RankedHit is one entry of a per-query ranked result list. Rank is 1-based
// within the producing source's own list.
type RankedHit struct {
	SegmentID string
	Source    Source
	Rank      int
	Score     float64
}

// #endregion ranked-hit

// #region code-pattern

// codePattern matches ICD-11-shaped classification codes such as "6A70" or
// "6B00.2".
var codePattern = regexp.MustCompile(`\b[0-9][A-Z][0-9]{2}(?:\.[0-9A-Z]{1,2})?\b`)

// ExtractCodes returns all classification-code tokens found in text, in order
// of appearance, deduplicated.
func ExtractCodes(text string) []string {
	matches := codePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var codes []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		codes = append(codes, m)
	}
	return codes
}

// ContainsCode reports whether text carries a classification-code token.
func ContainsCode(text string) bool {
	return codePattern.MatchString(text)
}

// #endregion code-pattern

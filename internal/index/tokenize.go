package index

import (
	"strings"
	"unicode"
)

// #region stopwords
// stopwords contains common English and Spanish words excluded from lexical
// scoring.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "be": true, "been": true,
	"and": true, "or": true, "but": true, "if": true, "not": true,
	"at": true, "by": true, "for": true, "from": true, "in": true,
	"of": true, "on": true, "to": true, "with": true, "that": true,
	"this": true, "it": true, "its": true, "as": true, "so": true,
	"el": true, "la": true, "los": true, "las": true, "un": true,
	"una": true, "de": true, "del": true, "en": true, "con": true,
	"por": true, "para": true, "que": true, "se": true, "es": true,
	"y": true, "o": true, "no": true, "me": true, "mi": true,
	"muy": true, "mas": true, "más": true, "como": true, "cuando": true,
}

// tokenize splits text into lowercase tokens, keeping duplicates so term
// frequencies survive. Digits are kept so classification codes remain
// searchable as single tokens.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
	})
	var tokens []string
	for _, w := range words {
		w = strings.Trim(w, ".")
		if len(w) < 2 || stopwords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// #endregion stopwords

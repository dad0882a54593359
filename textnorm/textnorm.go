// Package textnorm normalizes free text into comparable token sets for
// keyword matching: lowercasing, punctuation stripping, and stop-word
// removal.
package textnorm

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "can": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"has": {}, "have": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {},
	"my": {}, "of": {}, "on": {}, "or": {}, "s": {}, "that": {}, "the": {},
	"this": {}, "to": {}, "was": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

// Tokenize lowercases s, strips punctuation, splits on whitespace, and
// drops stop-words. Duplicate tokens are preserved.
func Tokenize(s string) []string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, s)

	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := stopWords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenSet returns the deduplicated token set of s.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Overlap scores how much of the query token set appears in the candidate
// token set, in [0,1]. An empty query scores 0.
func Overlap(query, candidate map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for tok := range query {
		if _, ok := candidate[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

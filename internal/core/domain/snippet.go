package domain

import (
	"regexp"
	"strings"
)

var sentenceBreak = regexp.MustCompile(`[.!?。]`)

// Snippet returns the first sentence of text containing query, trimmed.
// Matching uses the normalised form of both. It returns "" when the
// query is empty or no sentence matches.
func Snippet(text, query string) string {
	q := Normalize(query)
	if q == "" || text == "" {
		return ""
	}
	for _, sentence := range sentenceBreak.Split(text, -1) {
		if strings.Contains(Normalize(sentence), q) {
			return strings.TrimSpace(sentence)
		}
	}
	return ""
}

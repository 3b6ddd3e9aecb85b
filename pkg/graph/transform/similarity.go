package transform

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

var (
	punctRE = regexp.MustCompile(`[^\w\s]`)
	spaceRE = regexp.MustCompile(`\s+`)
)

// normalizeText lowercases, strips punctuation, and compresses whitespace.
// Malformed or empty text normalizes to "" which similarity treats as
// maximally dissimilar, so bad input can never cause a merge.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = punctRE.ReplaceAllString(s, "")
	s = spaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// tokenSort normalizes text and rejoins its tokens in sorted order, making
// the comparison insensitive to word order.
func tokenSort(s string) string {
	tokens := strings.Fields(normalizeText(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// TextSimilarity returns a similarity score in [0,1] between two texts
// using token-sorted Levenshtein similarity. Empty or all-punctuation
// inputs score 0.
func TextSimilarity(a, b string) float64 {
	sa, sb := tokenSort(a), tokenSort(b)
	if sa == "" || sb == "" {
		return 0
	}
	return levenshtein.Similarity(sa, sb, nil)
}

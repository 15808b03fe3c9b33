package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText folds text for comparison: lower case, every run of
// non-alphanumeric characters becomes one space. å, ä and ö are kept.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsText reports whether the normalized query occurs in any of the
// normalized fields. An empty query matches everything.
func ContainsText(query string, fields ...string) bool {
	q := NormalizeText(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(NormalizeText(f), q) {
			return true
		}
	}
	return false
}

// Package match provides text normalization, similarity scoring, and
// evidence location for label verification. Everything here is pure:
// no I/O, no shared mutable state, safe for concurrent use.
package match

import (
	"regexp"
	"strings"
)

// Punctuation is stripped except characters that carry meaning on labels:
// percent, decimal point, slash, hyphen.
var punctRe = regexp.MustCompile(`[^\w\s.%/-]`)
var spaceRe = regexp.MustCompile(`\s+`)

// Normalize canonicalizes text for comparison: lower-case, strip
// punctuation, collapse whitespace runs, trim. Idempotent — normalizing
// already-normalized text is a no-op.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens returns the normalized words of s
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

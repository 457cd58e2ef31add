// Package extract pulls structured numbers out of noisy label text:
// alcohol content, volumes and their units. All extractors are pure and
// operate on plain strings.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausible ABV window. Matches outside it are rejected and the next
// pattern is tried; a stray "100%" (as in "100% agave") must not be read
// as alcohol content.
const (
	abvMin = 0.5
	abvMax = 95.0
)

// Ordered from most to least specific. Later patterns use a bounded
// character window instead of adjacency so "ALC. 45% BY VOL." still hits.
var abvPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)\s*%\s*(?:alc(?:ohol)?(?:\s*\.?\s*)?(?:/\s*vol(?:ume)?)?|abv)`),
	regexp.MustCompile(`(\d+\.?\d*)\s*%\s*alcohol`),
	regexp.MustCompile(`(\d+\.?\d*)\s*percent\s*alc`),
	regexp.MustCompile(`alcohol\s*(?:by\s*volume)?\s*(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`(?:alc|alcohol|vol|volume|proof)\D{0,15}(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`(\d+\.?\d*)\s*%\D{0,15}(?:alc|alcohol|vol|volume)`),
}

// ExtractABV finds the alcohol-by-volume percentage in text. Patterns are
// tried in order; the first match inside the plausible window wins.
func ExtractABV(text string) (float64, bool) {
	lower := strings.ToLower(text)

	for _, pattern := range abvPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if value >= abvMin && value <= abvMax {
			return value, true
		}
	}
	return 0, false
}

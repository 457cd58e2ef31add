package match

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Matching strategy names, as they appear in config
const (
	StrategyFuzzy = "fuzzy"
	StrategyExact = "exact"
)

// Scorer compares two strings and yields a similarity in [0,1].
// A Scorer is chosen once at startup and used uniformly; strategies are
// never mixed within a single verification call.
type Scorer interface {
	// Name returns the strategy name
	Name() string

	// Score returns similarity in [0,1], insensitive to word order
	Score(a, b string) float64

	// Match reports whether the similarity clears the threshold
	Match(a, b string, threshold float64) (bool, float64)
}

// NewScorer builds the scorer for the configured strategy. Callers should
// warn the operator when the exact strategy is selected: it materially
// degrades match quality against noisy OCR text.
func NewScorer(strategy string) (Scorer, error) {
	switch strategy {
	case StrategyFuzzy, "":
		return &TokenSortScorer{}, nil
	case StrategyExact:
		return &ExactScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown matching strategy: %q (must be fuzzy or exact)", strategy)
	}
}

// TokenSortScorer scores with a token-sort levenshtein ratio: both inputs
// are normalized, their tokens sorted and rejoined, then compared by edit
// distance. Word order differences score highly ("Rare Eagle" vs
// "Eagle Rare" is 1.0).
type TokenSortScorer struct{}

func (s *TokenSortScorer) Name() string { return StrategyFuzzy }

func (s *TokenSortScorer) Score(a, b string) float64 {
	na := tokenSort(a)
	nb := tokenSort(b)
	if na == "" && nb == "" {
		return 1.0
	}
	la := utf8.RuneCountInString(na)
	lb := utf8.RuneCountInString(nb)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1.0 - float64(dist)/float64(longest)
}

func (s *TokenSortScorer) Match(a, b string, threshold float64) (bool, float64) {
	score := s.Score(a, b)
	return score >= threshold, score
}

func tokenSort(s string) string {
	tokens := Tokens(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ExactScorer is the degraded fallback: equality of normalized text,
// scoring 1.0 or 0.0 with nothing in between.
type ExactScorer struct{}

func (s *ExactScorer) Name() string { return StrategyExact }

func (s *ExactScorer) Score(a, b string) float64 {
	if Normalize(a) == Normalize(b) {
		return 1.0
	}
	return 0.0
}

func (s *ExactScorer) Match(a, b string, threshold float64) (bool, float64) {
	score := s.Score(a, b)
	return score >= threshold, score
}

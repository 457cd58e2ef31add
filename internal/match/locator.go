package match

import (
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// Per-token acceptance bar for tier-3 candidate matching. Deliberately
// permissive: candidates are filtered again by overall coverage.
const tokenCandidateThreshold = 0.6

// Coverage bars for tier 3
const (
	coverageMatch   = 0.8
	coveragePartial = 0.7
)

// Location is the outcome of searching evidence for an expected phrase
type Location struct {
	Found       bool
	Partial     bool // coverage landed in the warning band [0.7, 0.8)
	MatchedText string
	Block       *model.TextBlock
	Confidence  float64
}

// Locator finds the best evidence for an expected phrase using a
// three-tier strategy: full-text fuzzy, per-block fuzzy, then token
// coverage across blocks. Tier 3 exists because a phrase may be split
// across several non-adjacent OCR blocks (multi-line warning text) that
// no single fuzzy comparison will find.
type Locator struct {
	scorer Scorer
}

// NewLocator builds a Locator around the configured scorer
func NewLocator(scorer Scorer) *Locator {
	return &Locator{scorer: scorer}
}

// Locate searches the evidence for expected text. Tiers are tried in
// order and the first success wins. Ties between blocks break to the
// first block in evidence order.
func (l *Locator) Locate(expected string, ev *model.Evidence, threshold float64) Location {
	// Tier 1: fuzzy match against the full OCR text
	if ok, score := l.scorer.Match(expected, ev.FullText, threshold); ok {
		return Location{Found: true, MatchedText: expected, Confidence: score}
	}

	// Tier 2: best-scoring individual block, first-wins on ties
	bestScore := 0.0
	var bestBlock *model.TextBlock
	for i := range ev.TextBlocks {
		score := l.scorer.Score(expected, ev.TextBlocks[i].Text)
		if score > bestScore {
			bestScore = score
			bestBlock = &ev.TextBlocks[i]
		}
	}
	if bestBlock != nil && bestScore >= threshold {
		return Location{Found: true, MatchedText: bestBlock.Text, Block: bestBlock, Confidence: bestScore}
	}

	// Tier 3: token coverage across blocks
	expectedTokens := Tokens(expected)
	if len(expectedTokens) == 0 {
		return Location{}
	}

	covered := make([]bool, len(expectedTokens))
	var matchingBlocks []*model.TextBlock
	for i := range ev.TextBlocks {
		block := &ev.TextBlocks[i]
		blockMatched := false
		for _, blockToken := range Tokens(block.Text) {
			for j, expectedToken := range expectedTokens {
				if ok, _ := l.scorer.Match(blockToken, expectedToken, tokenCandidateThreshold); ok {
					covered[j] = true
					blockMatched = true
				}
			}
		}
		if blockMatched {
			matchingBlocks = append(matchingBlocks, block)
		}
	}

	coveredCount := 0
	for _, c := range covered {
		if c {
			coveredCount++
		}
	}
	coverage := float64(coveredCount) / float64(len(expectedTokens))

	if coverage >= coverageMatch {
		texts := make([]string, len(matchingBlocks))
		for i, b := range matchingBlocks {
			texts[i] = b.Text
		}
		loc := Location{
			Found:       true,
			MatchedText: strings.Join(texts, " "),
			Confidence:  coverage,
		}
		if len(matchingBlocks) > 0 {
			loc.Block = matchingBlocks[0]
		}
		return loc
	}
	if coverage >= coveragePartial {
		return Location{Partial: true, Confidence: coverage}
	}
	return Location{Confidence: coverage}
}

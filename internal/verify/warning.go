package verify

import (
	"fmt"
	"strings"

	"github.com/labelscope/labelscope/internal/match"
	"github.com/labelscope/labelscope/internal/model"
)

const warningExpected = "GOVERNMENT WARNING: (1) According to the Surgeon General..."

// verifyGovernmentWarning checks the mandated health warning statement.
// Two stages: every critical keyword must be present (exact or per-token
// fuzzy), then the full warning text is checked by token coverage since
// it always spans several OCR blocks. 27 CFR Part 16.
func (v *Verifier) verifyGovernmentWarning(_ *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR Part 16"

	evidenceTokens := match.Tokens(ev.FullText)
	evidenceNormalized := match.Normalize(ev.FullText)

	var missing []string
	for _, keyword := range governmentWarningKeywords {
		if strings.Contains(evidenceNormalized, keyword) {
			continue
		}
		// Exact search failed; accept the keyword if every one of its
		// tokens fuzzy-matches some evidence token (OCR garbling)
		matched := 0
		for _, kwToken := range strings.Fields(keyword) {
			for _, evToken := range evidenceTokens {
				if ok, _ := v.scorer.Match(kwToken, evToken, warningKeywordBar); ok {
					matched++
					break
				}
			}
		}
		if matched != len(strings.Fields(keyword)) {
			missing = append(missing, keyword)
		}
	}

	if len(missing) > 0 {
		return model.FieldResult{
			FieldName:           model.FieldGovernmentWarning,
			Status:              model.StatusNotFound,
			Expected:            warningExpected,
			Confidence:          0,
			Message:             "Government warning incomplete or missing. Missing keywords: " + strings.Join(missing, ", "),
			RegulatoryReference: cfr,
		}
	}

	warningBlock := findBlockByContent(ev, "government warning", "government", "warning")

	// Token coverage of the full mandated text
	warningTokens := match.Tokens(governmentWarningText)
	covered := 0
	for _, wToken := range warningTokens {
		for _, evToken := range evidenceTokens {
			if ok, _ := v.scorer.Match(wToken, evToken, warningCoverageMatch); ok {
				covered++
				break
			}
		}
	}
	coverage := 0.0
	if len(warningTokens) > 0 {
		coverage = float64(covered) / float64(len(warningTokens))
	}

	switch {
	case coverage >= warningCoverageMatch:
		return model.FieldResult{
			FieldName:           model.FieldGovernmentWarning,
			Status:              model.StatusMatch,
			Expected:            warningExpected,
			Found:               "Government warning present",
			Confidence:          coverage,
			Location:            blockLocation(warningBlock),
			Message:             fmt.Sprintf("Government warning matches (confidence: %.1f%%)", coverage*100),
			RegulatoryReference: cfr,
		}
	case coverage >= warningCoveragePartial:
		return model.FieldResult{
			FieldName:           model.FieldGovernmentWarning,
			Status:              model.StatusWarning,
			Expected:            warningExpected,
			Found:               "Government warning present with variations",
			Confidence:          coverage,
			Location:            blockLocation(warningBlock),
			Message:             fmt.Sprintf("Government warning found but may have formatting issues (coverage: %.1f%%)", coverage*100),
			RegulatoryReference: cfr,
		}
	default:
		return model.FieldResult{
			FieldName:           model.FieldGovernmentWarning,
			Status:              model.StatusNotFound,
			Expected:            warningExpected,
			Confidence:          0,
			Message:             "Government warning not found or incomplete",
			RegulatoryReference: cfr,
		}
	}
}

package verify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

var claimedAgeRe = regexp.MustCompile(`(\d+)\s*(?:year|yr)`)

// 27 CFR 5.74 approved age statement phrasings
var ageFormatRes = []*regexp.Regexp{
	regexp.MustCompile(`aged\s+\d+\s+years?`),
	regexp.MustCompile(`\d+\s+years?\s+old`),
	regexp.MustCompile(`\d+\s+yr\.?\s+old`),
	regexp.MustCompile(`aged\s+\d+\s+months?`), // products under one year
}

// Catches label phrasings the claim text may not use verbatim, like
// "Aged at least 12 years" or "18 months old"
var evidenceAgeRe = regexp.MustCompile(`(?i)\b(?:aged?|age)\s+(?:at\s+least\s+|a\s+minimum\s+of\s+)?(\d+)\s+(?:years?|yrs?|months?|mos?)\s*(?:old)?\b`)

// ageStatementRequired implements the 27 CFR 5.74 requirement: an age
// statement is mandatory for whisky aged under 4 years and brandy aged
// under 2 years. The claimed age comes from the claim's own text.
func ageStatementRequired(claim *model.Claim) bool {
	classLower := strings.ToLower(claim.ProductClass)

	whiskyFamily := false
	for _, w := range []string{"whiskey", "whisky", "bourbon", "rye", "scotch"} {
		if strings.Contains(classLower, w) {
			whiskyFamily = true
			break
		}
	}
	brandyFamily := strings.Contains(classLower, "brandy") || strings.Contains(classLower, "cognac")

	if !whiskyFamily && !brandyFamily {
		return false
	}
	if claim.AgeStatement == "" {
		// No claimed age: assume old enough that no statement is needed
		return false
	}
	m := claimedAgeRe.FindStringSubmatch(strings.ToLower(claim.AgeStatement))
	if m == nil {
		return false
	}
	age, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	if whiskyFamily {
		return age < 4
	}
	return age < 2
}

// validAgeFormat checks an age statement against the approved phrasings
func validAgeFormat(ageText string) bool {
	lower := strings.ToLower(ageText)
	for _, re := range ageFormatRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// verifyAgeStatement handles the conditional age statement requirement
// for spirits. 27 CFR 5.74.
func (v *Verifier) verifyAgeStatement(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.74"

	if claim.AgeStatement == "" {
		if ageStatementRequired(claim) {
			return model.FieldResult{
				FieldName:           model.FieldAgeStatement,
				Status:              model.StatusError,
				Expected:            "Age statement required",
				Confidence:          0,
				Message:             fmt.Sprintf("Age statement REQUIRED for %s but not provided", claim.ProductClass),
				RegulatoryReference: cfr,
			}
		}
		return model.FieldResult{
			FieldName:  model.FieldAgeStatement,
			Status:     model.StatusMatch,
			Expected:   model.ExpectedNotRequired,
			Found:      model.ExpectedNotApplicable,
			Confidence: 1.0,
			Message:    "Age statement not required for this product",
		}
	}

	if !validAgeFormat(claim.AgeStatement) {
		return model.FieldResult{
			FieldName:           model.FieldAgeStatement,
			Status:              model.StatusWarning,
			Expected:            claim.AgeStatement,
			Confidence:          0.5,
			Message:             fmt.Sprintf("Age statement format may not comply with TTB requirements: %q", claim.AgeStatement),
			RegulatoryReference: cfr,
		}
	}

	loc := v.locator.Locate(claim.AgeStatement, ev, brandThreshold)
	regexBlock, regexMatch := findBlockByRegex(ev, evidenceAgeRe)

	if loc.Found || regexBlock != nil {
		found := loc.MatchedText
		block := loc.Block
		confidence := loc.Confidence
		if !loc.Found {
			found = regexMatch[0]
			block = regexBlock
			confidence = 0.9
		}
		return model.FieldResult{
			FieldName:           model.FieldAgeStatement,
			Status:              model.StatusMatch,
			Expected:            claim.AgeStatement,
			Found:               found,
			Confidence:          confidence,
			Location:            blockLocation(block),
			Message:             fmt.Sprintf("Age statement matches (confidence: %.1f%%)", confidence*100),
			RegulatoryReference: cfr,
		}
	}

	status := model.StatusWarning
	if ageStatementRequired(claim) {
		status = model.StatusNotFound
	}
	return model.FieldResult{
		FieldName:           model.FieldAgeStatement,
		Status:              status,
		Expected:            claim.AgeStatement,
		Confidence:          0,
		Message:             fmt.Sprintf("Age statement %q not found on label", claim.AgeStatement),
		RegulatoryReference: cfr,
	}
}

// verifyProof checks the optional proof statement for spirits: the
// claimed proof must equal ABV x 2 within one proof point, and if so the
// label is searched for the literal "<N> proof". 27 CFR 5.65.
func (v *Verifier) verifyProof(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.65"

	if claim.Proof == nil {
		return model.FieldResult{
			FieldName:  model.FieldProof,
			Status:     model.StatusMatch,
			Expected:   model.ExpectedNotProvided,
			Found:      model.ExpectedNotApplicable,
			Confidence: 1.0,
			Message:    "Proof statement not provided (optional)",
		}
	}

	expectedProof := claim.AlcoholContent * 2
	if math.Abs(*claim.Proof-expectedProof) > proofTolerance {
		return model.FieldResult{
			FieldName:  model.FieldProof,
			Status:     model.StatusError,
			Expected:   fmt.Sprintf("%.0f proof", expectedProof),
			Found:      fmt.Sprintf("%.0f proof", *claim.Proof),
			Confidence: 1.0,
			Message: fmt.Sprintf("Proof calculation error: %.0f proof doesn't match ABV %s%% (should be %.0f proof)",
				*claim.Proof, formatNumber(claim.AlcoholContent), expectedProof),
			RegulatoryReference: cfr,
		}
	}

	proofRe := regexp.MustCompile(fmt.Sprintf(`(?i)\b%.0f\s*proof\b`, *claim.Proof))
	if proofRe.MatchString(ev.FullText) {
		proofBlock, _ := findBlockByRegex(ev, proofRe)
		return model.FieldResult{
			FieldName:           model.FieldProof,
			Status:              model.StatusMatch,
			Expected:            fmt.Sprintf("%.0f proof", *claim.Proof),
			Found:               fmt.Sprintf("%.0f proof", *claim.Proof),
			Confidence:          0.9,
			Location:            blockLocation(proofBlock),
			Message:             fmt.Sprintf("Proof statement matches: %.0f proof", *claim.Proof),
			RegulatoryReference: cfr,
		}
	}
	return model.FieldResult{
		FieldName:           model.FieldProof,
		Status:              model.StatusWarning,
		Expected:            fmt.Sprintf("%.0f proof", *claim.Proof),
		Confidence:          0,
		Message:             fmt.Sprintf("Proof statement '%.0f proof' not found on label (optional field)", *claim.Proof),
		RegulatoryReference: cfr,
	}
}

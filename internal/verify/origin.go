package verify

import (
	"fmt"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// verifyCountryOfOrigin checks the origin statement, required only for
// imported products. 27 CFR 5.44, 4.30, 7.25.
func (v *Verifier) verifyCountryOfOrigin(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.44, 4.30, 7.25"

	if !claim.IsImported {
		return model.FieldResult{
			FieldName:  model.FieldCountryOfOrigin,
			Status:     model.StatusMatch,
			Expected:   model.ExpectedNotRequired,
			Found:      model.ExpectedDomesticProduct,
			Confidence: 1.0,
			Message:    "Country of origin not required (domestic product)",
		}
	}

	if claim.CountryOfOrigin == "" {
		// Claim defect: the import flag demands a country
		return model.FieldResult{
			FieldName:           model.FieldCountryOfOrigin,
			Status:              model.StatusError,
			Expected:            "Country name required",
			Confidence:          0,
			Message:             "Country of origin REQUIRED for imported products but not provided",
			RegulatoryReference: cfr,
		}
	}

	loc := v.locator.Locate(claim.CountryOfOrigin, ev, brandThreshold)

	evidenceLower := strings.ToLower(ev.FullText)
	countryLower := strings.ToLower(claim.CountryOfOrigin)
	phraseHit := strings.Contains(evidenceLower, "product of "+countryLower) ||
		strings.Contains(evidenceLower, "imported from "+countryLower)

	if loc.Found || phraseHit {
		block := loc.Block
		if block == nil {
			block = findBlockByContent(ev,
				claim.CountryOfOrigin,
				"product of "+claim.CountryOfOrigin,
				"imported from "+claim.CountryOfOrigin)
		}
		found := loc.MatchedText
		if found == "" {
			found = claim.CountryOfOrigin
		}
		confidence := loc.Confidence
		if !loc.Found {
			confidence = 0.85
		}
		return model.FieldResult{
			FieldName:           model.FieldCountryOfOrigin,
			Status:              model.StatusMatch,
			Expected:            claim.CountryOfOrigin,
			Found:               found,
			Confidence:          confidence,
			Location:            blockLocation(block),
			Message:             fmt.Sprintf("Country of origin found: %s", claim.CountryOfOrigin),
			RegulatoryReference: cfr,
		}
	}

	return model.FieldResult{
		FieldName:           model.FieldCountryOfOrigin,
		Status:              model.StatusNotFound,
		Expected:            claim.CountryOfOrigin,
		Confidence:          0,
		Message:             fmt.Sprintf("Country of origin %q REQUIRED but not found on label", claim.CountryOfOrigin),
		RegulatoryReference: cfr,
	}
}

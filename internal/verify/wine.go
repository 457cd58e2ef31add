package verify

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/labelscope/labelscope/internal/match"
	"github.com/labelscope/labelscope/internal/model"
)

// Accepts both American and British spellings, with or without the
// "contains" prefix
var sulfiteRe = regexp.MustCompile(`(?i)\b(?:contains\s+)?sul[fp]h?ites?\b`)

// verifySulfites checks the sulfite declaration, required when the wine
// contains 10 ppm or more of sulfites. 27 CFR 5.63(c)(7).
func (v *Verifier) verifySulfites(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.63(c)(7)"

	if !claim.ContainsSulfites {
		return model.FieldResult{
			FieldName:  model.FieldSulfites,
			Status:     model.StatusMatch,
			Expected:   model.ExpectedNotRequired,
			Found:      model.ExpectedNotApplicable,
			Confidence: 1.0,
			Message:    "Sulfite declaration not required (contains_sulfites = false)",
		}
	}

	// Search whitespace-collapsed text so a declaration split across
	// lines still matches
	if sulfiteRe.MatchString(match.Normalize(ev.FullText)) {
		sulfiteBlock, _ := findBlockByRegex(ev, sulfiteRe)
		return model.FieldResult{
			FieldName:           model.FieldSulfites,
			Status:              model.StatusMatch,
			Expected:            "Contains Sulfites",
			Found:               "Contains Sulfites",
			Confidence:          0.9,
			Location:            blockLocation(sulfiteBlock),
			Message:             "Sulfite declaration found on label",
			RegulatoryReference: cfr,
		}
	}

	return model.FieldResult{
		FieldName:           model.FieldSulfites,
		Status:              model.StatusNotFound,
		Expected:            "Contains Sulfites",
		Confidence:          0,
		Message:             "Sulfite declaration REQUIRED but not found on label (wine contains ≥10 ppm sulfites)",
		RegulatoryReference: cfr,
	}
}

// verifyVintage checks the optional vintage year: if claimed, the exact
// year must appear on the label as a whole token, so 2019 inside a lot
// number like 12019 never counts. 27 CFR 4.27.
func (v *Verifier) verifyVintage(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 4.27"

	if claim.VintageYear == nil {
		return model.FieldResult{
			FieldName:  model.FieldVintage,
			Status:     model.StatusMatch,
			Expected:   model.ExpectedNotProvided,
			Found:      model.ExpectedNotApplicable,
			Confidence: 1.0,
			Message:    "Vintage year not provided (optional)",
		}
	}

	vintage := strconv.Itoa(*claim.VintageYear)
	vintageRe := regexp.MustCompile(`\b` + vintage + `\b`)

	if vintageBlock, _ := findBlockByRegex(ev, vintageRe); vintageBlock != nil {
		return model.FieldResult{
			FieldName:           model.FieldVintage,
			Status:              model.StatusMatch,
			Expected:            vintage,
			Found:               vintage,
			Confidence:          0.95,
			Location:            blockLocation(vintageBlock),
			Message:             fmt.Sprintf("Vintage year %s found on label", vintage),
			RegulatoryReference: cfr,
		}
	}
	return model.FieldResult{
		FieldName:           model.FieldVintage,
		Status:              model.StatusNotFound,
		Expected:            vintage,
		Confidence:          0,
		Message:             fmt.Sprintf("Vintage year %s not found on label", vintage),
		RegulatoryReference: cfr,
	}
}

package verify

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/labelscope/labelscope/internal/extract"
	"github.com/labelscope/labelscope/internal/model"
)

// formatNumber renders a float without trailing zeros ("45", "13.5")
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// verifyBrandName locates the claimed brand name on the label.
// 27 CFR 5.32 (spirits), 4.33 (wine), 7.23 (malt beverages).
func (v *Verifier) verifyBrandName(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.32, 4.33, 7.23"

	loc := v.locator.Locate(claim.BrandName, ev, brandThreshold)
	if loc.Found {
		return model.FieldResult{
			FieldName:           model.FieldBrandName,
			Status:              model.StatusMatch,
			Expected:            claim.BrandName,
			Found:               loc.MatchedText,
			Confidence:          loc.Confidence,
			Location:            blockLocation(loc.Block),
			Message:             fmt.Sprintf("Brand name matches (confidence: %.1f%%)", loc.Confidence*100),
			RegulatoryReference: cfr,
		}
	}
	return model.FieldResult{
		FieldName:           model.FieldBrandName,
		Status:              model.StatusNotFound,
		Expected:            claim.BrandName,
		Confidence:          0,
		Message:             fmt.Sprintf("Brand name %q not found on label", claim.BrandName),
		RegulatoryReference: cfr,
	}
}

// verifyProductClass locates the claimed class/type designation, falling
// back to a synonym table so "Bourbon" matches a label that says
// "Kentucky Bourbon". 27 CFR 5.35, 4.34, 7.24.
func (v *Verifier) verifyProductClass(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.35, 4.34, 7.24"

	loc := v.locator.Locate(claim.ProductClass, ev, classThreshold)
	if loc.Found {
		return model.FieldResult{
			FieldName:           model.FieldProductClass,
			Status:              model.StatusMatch,
			Expected:            claim.ProductClass,
			Found:               loc.MatchedText,
			Confidence:          loc.Confidence,
			Location:            blockLocation(loc.Block),
			Message:             fmt.Sprintf("Product class matches (confidence: %.1f%%)", loc.Confidence*100),
			RegulatoryReference: cfr,
		}
	}

	expectedLower := strings.ToLower(claim.ProductClass)
	evidenceLower := strings.ToLower(ev.FullText)
	for base, synonyms := range productClassSynonyms {
		if !classInGroup(expectedLower, base, synonyms) {
			continue
		}
		for _, synonym := range synonyms {
			if strings.Contains(evidenceLower, synonym) {
				return model.FieldResult{
					FieldName:           model.FieldProductClass,
					Status:              model.StatusMatch,
					Expected:            claim.ProductClass,
					Found:               synonym,
					Confidence:          synonymConfidence,
					Location:            blockLocation(findBlockByContent(ev, synonym)),
					Message:             fmt.Sprintf("Product class matches via synonym: %q ≈ %q", synonym, claim.ProductClass),
					RegulatoryReference: cfr,
				}
			}
		}
	}

	return model.FieldResult{
		FieldName:           model.FieldProductClass,
		Status:              model.StatusNotFound,
		Expected:            claim.ProductClass,
		Confidence:          0,
		Message:             fmt.Sprintf("Product class %q not found on label", claim.ProductClass),
		RegulatoryReference: cfr,
	}
}

// classInGroup reports whether the claimed class belongs to a synonym
// group, either naming the base class or containing one of its synonyms
func classInGroup(expectedLower, base string, synonyms []string) bool {
	if expectedLower == base || strings.Contains(expectedLower, base) {
		return true
	}
	for _, syn := range synonyms {
		if expectedLower == syn || strings.Contains(expectedLower, syn) {
			return true
		}
	}
	return false
}

// verifyAlcoholContent extracts the ABV stated on the label and compares
// it to the claim within ±0.5 percentage points. 27 CFR 5.37, 4.36, 7.26.
func (v *Verifier) verifyAlcoholContent(claim *model.Claim, ev *model.Evidence) model.FieldResult {
	const cfr = "27 CFR 5.37, 4.36, 7.26"
	expected := fmt.Sprintf("%s%% ABV", formatNumber(claim.AlcoholContent))

	foundABV, ok := extract.ExtractABV(ev.FullText)
	if !ok {
		return model.FieldResult{
			FieldName:           model.FieldAlcoholContent,
			Status:              model.StatusNotFound,
			Expected:            expected,
			Confidence:          0,
			Message:             "Alcohol content not found on label",
			RegulatoryReference: cfr,
		}
	}

	abvRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(formatNumber(foundABV)) +
		`\s*%?\s*(?:alc(?:\.|/vol)?|abv|vol|alcohol)\b`)
	abvBlock, _ := findBlockByRegex(ev, abvRe)

	found := fmt.Sprintf("%s%% ABV", formatNumber(foundABV))
	difference := math.Abs(foundABV - claim.AlcoholContent)

	if difference <= abvTolerance {
		return model.FieldResult{
			FieldName:           model.FieldAlcoholContent,
			Status:              model.StatusMatch,
			Expected:            expected,
			Found:               found,
			Confidence:          0.95,
			Location:            blockLocation(abvBlock),
			Message: fmt.Sprintf("ABV matches: %s%% (expected %s%%, within ±%s%% tolerance)",
				formatNumber(foundABV), formatNumber(claim.AlcoholContent), formatNumber(abvTolerance)),
			RegulatoryReference: cfr,
		}
	}
	return model.FieldResult{
		FieldName:           model.FieldAlcoholContent,
		Status:              model.StatusMismatch,
		Expected:            expected,
		Found:               found,
		Confidence:          0.95,
		Location:            blockLocation(abvBlock),
		Message: fmt.Sprintf("ABV mismatch: Expected %s%%, Found %s%% (difference: %.1f%%, tolerance: ±%s%%)",
			formatNumber(claim.AlcoholContent), formatNumber(foundABV), difference, formatNumber(abvTolerance)),
		RegulatoryReference: cfr,
	}
}

// verifyNetContents compares the claimed container volume against the
// label, converting both to milliliters, and checks spirits/wine volumes
// against the standards of fill. A matching but non-standard size is a
// warning, not a failure. 27 CFR 5.47a, 4.71, 7.70.
func (v *Verifier) verifyNetContents(claim *model.Claim, ev *model.Evidence, productType model.ProductType) model.FieldResult {
	expectedAmount, expectedUnit, ok := extract.ExtractVolume(claim.NetContents)
	if !ok {
		return model.FieldResult{
			FieldName:  model.FieldNetContents,
			Status:     model.StatusError,
			Expected:   claim.NetContents,
			Confidence: 0,
			Message:    fmt.Sprintf("Invalid expected volume format: %q", claim.NetContents),
		}
	}
	expectedML, err := extract.ToMilliliters(expectedAmount, expectedUnit)
	if err != nil {
		return model.FieldResult{
			FieldName:  model.FieldNetContents,
			Status:     model.StatusError,
			Expected:   claim.NetContents,
			Confidence: 0,
			Message:    fmt.Sprintf("Invalid expected volume format: %q", claim.NetContents),
		}
	}

	foundAmount, foundUnit, ok := extract.ExtractVolume(ev.FullText)
	if !ok {
		return model.FieldResult{
			FieldName:           model.FieldNetContents,
			Status:              model.StatusNotFound,
			Expected:            claim.NetContents,
			Confidence:          0,
			Message:             "Net contents not found on label",
			RegulatoryReference: "27 CFR 5.47a, 4.71, 7.70",
		}
	}
	foundML, err := extract.ToMilliliters(foundAmount, foundUnit)
	if err != nil {
		return model.FieldResult{
			FieldName:           model.FieldNetContents,
			Status:              model.StatusNotFound,
			Expected:            claim.NetContents,
			Confidence:          0,
			Message:             "Net contents not found on label",
			RegulatoryReference: "27 CFR 5.47a, 4.71, 7.70",
		}
	}

	volumeRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(formatNumber(foundAmount)) +
		`\s*(?:ml|l|liters?|litres?|fl\s*oz|oz|ounces?|pints?|quarts?|gallons?)\b`)
	volumeBlock, _ := findBlockByRegex(ev, volumeRe)

	found := fmt.Sprintf("%s %s", formatNumber(foundAmount), foundUnit)

	if math.Abs(foundML-expectedML) > volumeTolerance {
		return model.FieldResult{
			FieldName:  model.FieldNetContents,
			Status:     model.StatusMismatch,
			Expected:   claim.NetContents,
			Found:      found,
			Confidence: 0.95,
			Location:   blockLocation(volumeBlock),
			Message: fmt.Sprintf("Volume mismatch: Expected %.0fml, Found %.0fml (difference: %.0fml)",
				expectedML, foundML, math.Abs(foundML-expectedML)),
			RegulatoryReference: "27 CFR 5.47a, 4.71, 7.70",
		}
	}

	cfr := map[model.ProductType]string{
		model.ProductSpirits: "27 CFR 5.47a",
		model.ProductWine:    "27 CFR 4.71",
		model.ProductBeer:    "27 CFR 7.70",
	}[productType]

	if productType == model.ProductBeer {
		// 27 CFR 7.70: no standards of fill for malt beverages
		return model.FieldResult{
			FieldName:           model.FieldNetContents,
			Status:              model.StatusMatch,
			Expected:            claim.NetContents,
			Found:               found,
			Confidence:          0.95,
			Location:            blockLocation(volumeBlock),
			Message:             fmt.Sprintf("Volume matches: %.0fml (beer: any container size valid)", foundML),
			RegulatoryReference: cfr,
		}
	}

	if extract.IsStandardSize(foundML, productType, extract.DefaultSizeTolerance) {
		return model.FieldResult{
			FieldName:           model.FieldNetContents,
			Status:              model.StatusMatch,
			Expected:            claim.NetContents,
			Found:               found,
			Confidence:          0.95,
			Location:            blockLocation(volumeBlock),
			Message:             fmt.Sprintf("Volume matches: %.0fml (standard size)", foundML),
			RegulatoryReference: cfr,
		}
	}
	return model.FieldResult{
		FieldName:  model.FieldNetContents,
		Status:     model.StatusWarning,
		Expected:   claim.NetContents,
		Found:      found,
		Confidence: 0.95,
		Location:   blockLocation(volumeBlock),
		Message: fmt.Sprintf("Volume matches (%.0fml) but NON-STANDARD size for %s. Standard sizes required per %s.",
			foundML, productType, cfr),
		RegulatoryReference: cfr,
	}
}

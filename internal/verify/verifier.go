package verify

import (
	"time"

	"github.com/labelscope/labelscope/internal/match"
	"github.com/labelscope/labelscope/internal/model"
	"github.com/labelscope/labelscope/internal/score"
)

type fieldVerifier func(*model.Claim, *model.Evidence) model.FieldResult

// Verifier runs the full field-by-field verification of a claim against
// label evidence. It is stateless after construction and safe for
// concurrent use; the matching strategy is fixed when it is built.
type Verifier struct {
	scorer  match.Scorer
	locator *match.Locator

	// Category-specific verifiers, run between the common fields and the
	// country-of-origin check. Beer deliberately maps to an empty list:
	// malt beverages carry no extra requirements here.
	dispatch map[model.ProductType][]fieldVerifier
}

// New builds a Verifier around the configured similarity scorer
func New(scorer match.Scorer) *Verifier {
	v := &Verifier{
		scorer:  scorer,
		locator: match.NewLocator(scorer),
	}
	v.dispatch = map[model.ProductType][]fieldVerifier{
		model.ProductSpirits: {v.verifyAgeStatement, v.verifyProof},
		model.ProductWine:    {v.verifySulfites, v.verifyVintage},
		model.ProductBeer:    {},
	}
	return v
}

// Verify checks every applicable field of the claim against the evidence
// and aggregates the results into a report. Field order is fixed: brand,
// class, ABV, net contents (when claimed), government warning, the
// category-specific fields, then country of origin.
func (v *Verifier) Verify(claim *model.Claim, ev *model.Evidence, productType model.ProductType) *model.Report {
	start := time.Now()

	var results []model.FieldResult
	warnings := []string{}
	errors := []string{}

	brand := v.verifyBrandName(claim, ev)
	results = append(results, brand)
	if brand.Status != model.StatusMatch {
		errors = append(errors, "Brand name '"+claim.BrandName+"' not found on label")
	}

	class := v.verifyProductClass(claim, ev)
	results = append(results, class)
	if class.Status != model.StatusMatch {
		errors = append(errors, "Product class '"+claim.ProductClass+"' not found on label")
	}

	abv := v.verifyAlcoholContent(claim, ev)
	results = append(results, abv)
	switch abv.Status {
	case model.StatusMismatch:
		errors = append(errors, abv.Message)
	case model.StatusNotFound:
		errors = append(errors, "Alcohol content not found on label")
	}

	if claim.NetContents != "" {
		net := v.verifyNetContents(claim, ev, productType)
		results = append(results, net)
		switch net.Status {
		case model.StatusWarning:
			warnings = append(warnings, net.Message)
		case model.StatusMismatch, model.StatusNotFound, model.StatusError:
			errors = append(errors, net.Message)
		}
	}

	warning := v.verifyGovernmentWarning(claim, ev)
	results = append(results, warning)
	if warning.Status != model.StatusMatch {
		errors = append(errors, "Government warning missing or incomplete (CRITICAL)")
	}

	for _, fn := range v.dispatch[productType] {
		fr := fn(claim, ev)
		results = append(results, fr)
		v.classify(fr, &warnings, &errors)
	}

	country := v.verifyCountryOfOrigin(claim, ev)
	results = append(results, country)
	switch country.Status {
	case model.StatusError:
		errors = append(errors, country.Message)
	case model.StatusNotFound:
		if claim.IsImported {
			errors = append(errors, country.Message)
		}
	}

	confidence := 0.0
	if len(results) > 0 {
		sum := 0.0
		for _, fr := range results {
			sum += fr.Confidence
		}
		confidence = sum / float64(len(results))
	}

	compliance := score.Calculate(results)

	return &model.Report{
		OverallMatch:     len(errors) == 0,
		ConfidenceScore:  confidence,
		FieldResults:     results,
		ComplianceScore:  int(compliance.Percentage),
		ComplianceGrade:  compliance.Grade,
		Warnings:         warnings,
		Errors:           errors,
		OCRFullText:      ev.FullText,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
}

// classify routes a category-specific result into the aggregate warning
// and error lists. A missing conditional field is an error only when the
// regulation demands its presence.
func (v *Verifier) classify(fr model.FieldResult, warnings, errors *[]string) {
	switch fr.FieldName {
	case model.FieldAgeStatement:
		switch fr.Status {
		case model.StatusError, model.StatusNotFound:
			*errors = append(*errors, fr.Message)
		case model.StatusWarning:
			*warnings = append(*warnings, fr.Message)
		}
	case model.FieldProof:
		switch fr.Status {
		case model.StatusError:
			*errors = append(*errors, fr.Message)
		case model.StatusWarning:
			*warnings = append(*warnings, fr.Message)
		}
	case model.FieldSulfites:
		if fr.Status == model.StatusNotFound {
			*errors = append(*errors, fr.Message)
		}
	case model.FieldVintage:
		if fr.Status == model.StatusNotFound {
			*warnings = append(*warnings, fr.Message)
		}
	}
}

package verify

import (
	"strings"
	"testing"

	"github.com/labelscope/labelscope/internal/match"
	"github.com/labelscope/labelscope/internal/model"
)

const warningLine1 = "GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink alcoholic beverages during pregnancy because of the risk of birth defects."
const warningLine2 = "(2) Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, and may cause health problems."

func testVerifier(t *testing.T) *Verifier {
	t.Helper()
	scorer, err := match.NewScorer(match.StrategyFuzzy)
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	return New(scorer)
}

// labelEvidence builds evidence the way the OCR layer does: one block per
// printed line, full text joined with newlines
func labelEvidence(lines ...string) *model.Evidence {
	ev := &model.Evidence{Confidence: 0.95}
	for i, line := range lines {
		ev.TextBlocks = append(ev.TextBlocks, model.TextBlock{
			Text:       line,
			Confidence: 0.9,
			BoundingBox: model.BoundingBox{
				X: 20, Y: 20 + i*36, Width: 400, Height: 30,
			},
		})
	}
	ev.FullText = strings.Join(lines, "\n")
	return ev
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func bourbonClaim() *model.Claim {
	return &model.Claim{
		BrandName:      "Eagle Rare",
		ProductClass:   "Straight Bourbon Whiskey",
		AlcoholContent: 45.0,
		NetContents:    "750 mL",
		BottlerName:    "Buffalo Trace Distillery",
		Address:        "Frankfort, KY",
		AgeStatement:   "Aged 10 Years",
		Proof:          floatPtr(90.0),
	}
}

func bourbonLabel() *model.Evidence {
	return labelEvidence(
		"EAGLE RARE",
		"KENTUCKY STRAIGHT BOURBON WHISKEY",
		"AGED 10 YEARS",
		"45% ALC/VOL",
		"90 PROOF",
		"750 mL",
		"BUFFALO TRACE DISTILLERY",
		"FRANKFORT, KENTUCKY",
		warningLine1,
		warningLine2,
	)
}

func TestVerifyBourbonPerfectMatch(t *testing.T) {
	v := testVerifier(t)

	report := v.Verify(bourbonClaim(), bourbonLabel(), model.ProductSpirits)

	if !report.OverallMatch {
		t.Fatalf("expected overall match, errors: %v", report.Errors)
	}
	if report.ComplianceScore != 100 {
		t.Errorf("compliance score = %d, want 100", report.ComplianceScore)
	}
	if report.ComplianceGrade != "A" {
		t.Errorf("grade = %q, want A", report.ComplianceGrade)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}

	// Field order is fixed
	wantOrder := []string{
		model.FieldBrandName,
		model.FieldProductClass,
		model.FieldAlcoholContent,
		model.FieldNetContents,
		model.FieldGovernmentWarning,
		model.FieldAgeStatement,
		model.FieldProof,
		model.FieldCountryOfOrigin,
	}
	if len(report.FieldResults) != len(wantOrder) {
		t.Fatalf("got %d field results, want %d", len(report.FieldResults), len(wantOrder))
	}
	for i, name := range wantOrder {
		if report.FieldResults[i].FieldName != name {
			t.Errorf("field %d = %q, want %q", i, report.FieldResults[i].FieldName, name)
		}
		if report.FieldResults[i].Status != model.StatusMatch {
			t.Errorf("field %q status = %q, want match", name, report.FieldResults[i].Status)
		}
	}
}

func TestVerifyABVMismatch(t *testing.T) {
	v := testVerifier(t)
	ev := labelEvidence(
		"EAGLE RARE",
		"STRAIGHT BOURBON WHISKEY",
		"37.5% ALC/VOL",
		"GOVERNMENT WARNING...",
	)

	report := v.Verify(bourbonClaim(), ev, model.ProductSpirits)

	if report.OverallMatch {
		t.Fatal("expected overall mismatch")
	}
	if abv := report.FieldByName(model.FieldAlcoholContent); abv == nil || abv.Status != model.StatusMismatch {
		t.Errorf("alcohol_content = %+v, want mismatch", abv)
	}
	if report.ComplianceScore >= 70 {
		t.Errorf("compliance score = %d, want < 70", report.ComplianceScore)
	}
	if len(report.Errors) < 3 {
		t.Errorf("errors = %v, want at least ABV, net contents and warning failures", report.Errors)
	}
}

func TestVerifyMissingGovernmentWarning(t *testing.T) {
	v := testVerifier(t)
	ev := labelEvidence(
		"EAGLE RARE",
		"STRAIGHT BOURBON WHISKEY",
		"45% ALC/VOL",
	)

	report := v.Verify(bourbonClaim(), ev, model.ProductSpirits)

	if report.OverallMatch {
		t.Fatal("expected overall mismatch")
	}
	if w := report.FieldByName(model.FieldGovernmentWarning); w == nil || w.Status != model.StatusNotFound {
		t.Errorf("government_warning = %+v, want not_found", w)
	}
	if report.ComplianceGrade != "D" && report.ComplianceGrade != "F" {
		t.Errorf("grade = %q, want D or F", report.ComplianceGrade)
	}
	foundWarningError := false
	for _, e := range report.Errors {
		if strings.Contains(strings.ToLower(e), "warning") {
			foundWarningError = true
		}
	}
	if !foundWarningError {
		t.Errorf("errors = %v, want a government warning error", report.Errors)
	}
}

func TestVerifyWineNonStandardSize(t *testing.T) {
	v := testVerifier(t)
	claim := &model.Claim{
		BrandName:        "Napa Valley Reserve",
		ProductClass:     "Cabernet Sauvignon",
		AlcoholContent:   13.5,
		NetContents:      "725 mL",
		VintageYear:      intPtr(2019),
		ContainsSulfites: true,
		Appellation:      "Napa Valley",
	}
	ev := labelEvidence(
		"NAPA VALLEY RESERVE",
		"CABERNET SAUVIGNON",
		"2019",
		"13.5% ALC/VOL",
		"725 mL",
		"CONTAINS SULFITES",
		"NAPA VALLEY",
		warningLine1,
		warningLine2,
	)

	report := v.Verify(claim, ev, model.ProductWine)

	if !report.OverallMatch {
		t.Fatalf("non-standard size should warn, not fail; errors: %v", report.Errors)
	}
	if net := report.FieldByName(model.FieldNetContents); net == nil || net.Status != model.StatusWarning {
		t.Errorf("net_contents = %+v, want warning", net)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a non-standard size warning")
	}
	if s := report.FieldByName(model.FieldSulfites); s == nil || s.Status != model.StatusMatch {
		t.Errorf("sulfites = %+v, want match", s)
	}
	if vin := report.FieldByName(model.FieldVintage); vin == nil || vin.Status != model.StatusMatch {
		t.Errorf("vintage = %+v, want match", vin)
	}
}

func TestVerifyWinePerfectMatch(t *testing.T) {
	v := testVerifier(t)
	claim := &model.Claim{
		BrandName:        "Napa Valley Reserve",
		ProductClass:     "Cabernet Sauvignon",
		AlcoholContent:   13.5,
		NetContents:      "750 mL",
		VintageYear:      intPtr(2019),
		ContainsSulfites: true,
	}
	ev := labelEvidence(
		"NAPA VALLEY RESERVE",
		"CABERNET SAUVIGNON",
		"2019",
		"13.5% ALC/VOL",
		"750 mL",
		"CONTAINS SULFITES",
		warningLine1,
		warningLine2,
	)

	report := v.Verify(claim, ev, model.ProductWine)

	if !report.OverallMatch {
		t.Fatalf("expected overall match, errors: %v", report.Errors)
	}
	if report.ComplianceScore != 100 || report.ComplianceGrade != "A" {
		t.Errorf("score/grade = %d/%q, want 100/A", report.ComplianceScore, report.ComplianceGrade)
	}
}

func TestVerifyBeerNoExtraRequirements(t *testing.T) {
	v := testVerifier(t)
	claim := &model.Claim{
		BrandName:      "Hop City",
		ProductClass:   "IPA",
		AlcoholContent: 6.5,
		NetContents:    "473 ml",
	}
	ev := labelEvidence(
		"HOP CITY",
		"INDIA PALE ALE",
		"6.5% ALC/VOL",
		"473 ML",
		warningLine1,
		warningLine2,
	)

	report := v.Verify(claim, ev, model.ProductBeer)

	if !report.OverallMatch {
		t.Fatalf("expected overall match, errors: %v", report.Errors)
	}
	// Beer runs no category-specific verifiers: brand, class, abv, net,
	// warning, country only
	if len(report.FieldResults) != 6 {
		t.Errorf("got %d field results, want 6: %+v", len(report.FieldResults), report.FieldResults)
	}
	// 473 ml is fine for beer: no standards of fill
	if net := report.FieldByName(model.FieldNetContents); net == nil || net.Status != model.StatusMatch {
		t.Errorf("net_contents = %+v, want match", net)
	}
	// "IPA" matches via the synonym table
	if class := report.FieldByName(model.FieldProductClass); class == nil || class.Status != model.StatusMatch {
		t.Errorf("product_class = %+v, want match", class)
	}
}

func TestVerifyOptionalFieldsOmitted(t *testing.T) {
	v := testVerifier(t)
	claim := &model.Claim{
		BrandName:      "Test Vodka",
		ProductClass:   "Vodka",
		AlcoholContent: 40.0,
	}
	ev := labelEvidence(
		"TEST VODKA",
		"VODKA",
		"40% ALC/VOL",
		warningLine1,
		warningLine2,
	)

	report := v.Verify(claim, ev, model.ProductSpirits)

	if !report.OverallMatch {
		t.Fatalf("expected overall match, errors: %v", report.Errors)
	}
	if report.ComplianceGrade != "A" && report.ComplianceGrade != "B" {
		t.Errorf("grade = %q, want A or B", report.ComplianceGrade)
	}
	// Net contents not claimed: no result for it
	if net := report.FieldByName(model.FieldNetContents); net != nil {
		t.Errorf("unexpected net_contents result: %+v", net)
	}
}

func TestVerifyReportShape(t *testing.T) {
	v := testVerifier(t)
	report := v.Verify(bourbonClaim(), bourbonLabel(), model.ProductSpirits)

	if report.Warnings == nil || report.Errors == nil {
		t.Error("warnings and errors must be non-nil even when empty")
	}
	if report.ConfidenceScore < 0 || report.ConfidenceScore > 1 {
		t.Errorf("confidence score %.3f out of [0,1]", report.ConfidenceScore)
	}
	if report.OCRFullText == "" {
		t.Error("report should carry the OCR full text")
	}
}

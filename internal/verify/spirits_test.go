package verify

import (
	"testing"

	"github.com/labelscope/labelscope/internal/model"
)

func TestAgeStatementRequired(t *testing.T) {
	tests := []struct {
		name  string
		class string
		age   string
		want  bool
	}{
		{"young bourbon", "Straight Bourbon Whiskey", "Aged 2 Years", true},
		{"bourbon at threshold", "Straight Bourbon Whiskey", "Aged 4 Years", false},
		{"old scotch", "Scotch Whisky", "Aged 12 Years", false},
		{"young rye", "Rye Whiskey", "3 Years Old", true},
		{"young brandy", "Brandy", "Aged 1 Year", true},
		{"brandy at threshold", "Cognac", "Aged 2 Years", false},
		{"whisky no age claimed", "Bourbon Whiskey", "", false},
		{"vodka never requires", "Vodka", "Aged 1 Year", false},
		{"unparseable age", "Bourbon", "very old", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &model.Claim{BrandName: "x", ProductClass: tt.class, AlcoholContent: 45, AgeStatement: tt.age}
			if got := ageStatementRequired(claim); got != tt.want {
				t.Errorf("ageStatementRequired(%q, %q) = %v, want %v", tt.class, tt.age, got, tt.want)
			}
		})
	}
}

func TestValidAgeFormat(t *testing.T) {
	valid := []string{
		"Aged 10 Years",
		"aged 1 year",
		"4 Years Old",
		"4 Year Old",
		"12 yr. old",
		"Aged 18 Months",
	}
	for _, s := range valid {
		if !validAgeFormat(s) {
			t.Errorf("validAgeFormat(%q) = false, want true", s)
		}
	}

	invalid := []string{"very old", "decade-aged", "10", ""}
	for _, s := range invalid {
		if validAgeFormat(s) {
			t.Errorf("validAgeFormat(%q) = true, want false", s)
		}
	}
}

func TestVerifyAgeStatement(t *testing.T) {
	v := testVerifier(t)

	tests := []struct {
		name         string
		class        string
		age          string
		lines        []string
		wantStatus   model.Status
		wantExpected string
	}{
		{
			"not provided not required",
			"Vodka", "",
			[]string{"TEST VODKA"},
			model.StatusMatch, model.ExpectedNotRequired,
		},
		{
			"required but not provided",
			"Straight Bourbon Whiskey", "",
			[]string{"BOURBON"},
			model.StatusMatch, model.ExpectedNotRequired, // no claimed age: assumed mature
		},
		{
			"bad format",
			"Bourbon", "very old",
			[]string{"VERY OLD BOURBON"},
			model.StatusWarning, "very old",
		},
		{
			"found verbatim",
			"Bourbon", "Aged 10 Years",
			[]string{"AGED 10 YEARS"},
			model.StatusMatch, "Aged 10 Years",
		},
		{
			"found via label phrasing",
			"Bourbon", "12 Years Old",
			[]string{"AGED AT LEAST 12 YEARS"},
			model.StatusMatch, "12 Years Old",
		},
		{
			"optional and absent",
			"Bourbon", "Aged 10 Years",
			[]string{"EAGLE RARE"},
			model.StatusWarning, "Aged 10 Years",
		},
		{
			"required and absent",
			"Bourbon", "Aged 2 Years",
			[]string{"EAGLE RARE"},
			model.StatusNotFound, "Aged 2 Years",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &model.Claim{BrandName: "x", ProductClass: tt.class, AlcoholContent: 45, AgeStatement: tt.age}
			got := v.verifyAgeStatement(claim, labelEvidence(tt.lines...))
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (result %+v)", got.Status, tt.wantStatus, got)
			}
			if got.Expected != tt.wantExpected {
				t.Errorf("expected = %q, want %q", got.Expected, tt.wantExpected)
			}
		})
	}
}

func TestVerifyProof(t *testing.T) {
	v := testVerifier(t)

	tests := []struct {
		name       string
		abv        float64
		proof      *float64
		lines      []string
		wantStatus model.Status
	}{
		{"not provided", 45, nil, []string{"EAGLE RARE"}, model.StatusMatch},
		{"consistent and on label", 45, floatPtr(90), []string{"90 PROOF"}, model.StatusMatch},
		{"consistent within tolerance", 45.4, floatPtr(90), []string{"90 PROOF"}, model.StatusMatch},
		{"inconsistent with abv", 45, floatPtr(80), []string{"80 PROOF"}, model.StatusError},
		{"consistent but absent", 45, floatPtr(90), []string{"EAGLE RARE"}, model.StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &model.Claim{BrandName: "x", ProductClass: "Bourbon", AlcoholContent: tt.abv, Proof: tt.proof}
			got := v.verifyProof(claim, labelEvidence(tt.lines...))
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (result %+v)", got.Status, tt.wantStatus, got)
			}
		})
	}
}

package verify

import (
	"testing"

	"github.com/labelscope/labelscope/internal/model"
)

func TestVerifySulfites(t *testing.T) {
	v := testVerifier(t)

	tests := []struct {
		name       string
		contains   bool
		lines      []string
		wantStatus model.Status
	}{
		{"not required", false, []string{"NAPA VALLEY RESERVE"}, model.StatusMatch},
		{"declared and present", true, []string{"CONTAINS SULFITES"}, model.StatusMatch},
		{"british spelling", true, []string{"CONTAINS SULPHITES"}, model.StatusMatch},
		{"singular", true, []string{"SULFITE"}, model.StatusMatch},
		{"bare declaration", true, []string{"SULFITES"}, model.StatusMatch},
		{"split across lines", true, []string{"CONTAINS", "SULFITES"}, model.StatusMatch},
		{"declared but missing", true, []string{"NAPA VALLEY RESERVE"}, model.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &model.Claim{BrandName: "x", ProductClass: "Cabernet Sauvignon", AlcoholContent: 13.5, ContainsSulfites: tt.contains}
			got := v.verifySulfites(claim, labelEvidence(tt.lines...))
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (result %+v)", got.Status, tt.wantStatus, got)
			}
			if !tt.contains && got.Expected != model.ExpectedNotRequired {
				t.Errorf("expected = %q, want sentinel", got.Expected)
			}
		})
	}
}

func TestVerifyVintage(t *testing.T) {
	v := testVerifier(t)

	tests := []struct {
		name       string
		year       *int
		lines      []string
		wantStatus model.Status
	}{
		{"not provided", nil, []string{"NAPA VALLEY"}, model.StatusMatch},
		{"present", intPtr(2019), []string{"2019", "NAPA VALLEY"}, model.StatusMatch},
		{"absent", intPtr(2019), []string{"NAPA VALLEY"}, model.StatusNotFound},
		{"embedded digits do not count", intPtr(2019), []string{"LOT 12019"}, model.StatusNotFound},
		{"wrong year", intPtr(2019), []string{"2021"}, model.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &model.Claim{BrandName: "x", ProductClass: "Cabernet Sauvignon", AlcoholContent: 13.5, VintageYear: tt.year}
			got := v.verifyVintage(claim, labelEvidence(tt.lines...))
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (result %+v)", got.Status, tt.wantStatus, got)
			}
		})
	}
}

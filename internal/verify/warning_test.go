package verify

import (
	"strings"
	"testing"

	"github.com/labelscope/labelscope/internal/model"
)

func TestVerifyGovernmentWarningComplete(t *testing.T) {
	v := testVerifier(t)
	ev := labelEvidence("EAGLE RARE", warningLine1, warningLine2)

	got := v.verifyGovernmentWarning(nil, ev)
	if got.Status != model.StatusMatch {
		t.Fatalf("status = %q, want match (%+v)", got.Status, got)
	}
	if got.Confidence < warningCoverageMatch {
		t.Errorf("confidence = %v, want >= %v", got.Confidence, warningCoverageMatch)
	}
	if got.Location == nil {
		t.Error("expected a location for the warning block")
	}
}

func TestVerifyGovernmentWarningOCRGarbling(t *testing.T) {
	v := testVerifier(t)
	// "Surgeon" and "impairs" garbled; token-level fuzzy matching absorbs it
	garbled1 := strings.ReplaceAll(warningLine1, "Surgeon", "Surgeqn")
	garbled2 := strings.ReplaceAll(warningLine2, "impairs", "imipairs")
	ev := labelEvidence(garbled1, garbled2)

	got := v.verifyGovernmentWarning(nil, ev)
	if got.Status != model.StatusMatch {
		t.Fatalf("status = %q, want match despite OCR errors (%+v)", got.Status, got)
	}
}

func TestVerifyGovernmentWarningTruncated(t *testing.T) {
	v := testVerifier(t)
	// Keywords all present but the second sentence is cut short:
	// coverage lands in the warning band
	truncated := warningLine1 + " (2) Consumption of alcoholic beverages impairs your ability to drive"
	ev := labelEvidence(truncated)

	got := v.verifyGovernmentWarning(nil, ev)
	if got.Status != model.StatusWarning {
		t.Fatalf("status = %q, want warning (confidence %v)", got.Status, got.Confidence)
	}
	if got.Confidence < warningCoveragePartial || got.Confidence >= warningCoverageMatch {
		t.Errorf("confidence = %v, want in [%v, %v)", got.Confidence, warningCoveragePartial, warningCoverageMatch)
	}
}

func TestVerifyGovernmentWarningMissingKeywords(t *testing.T) {
	v := testVerifier(t)
	ev := labelEvidence("GOVERNMENT WARNING: drink responsibly")

	got := v.verifyGovernmentWarning(nil, ev)
	if got.Status != model.StatusNotFound {
		t.Fatalf("status = %q, want not_found (%+v)", got.Status, got)
	}
	if !strings.Contains(got.Message, "surgeon general") {
		t.Errorf("message %q should name the missing keywords", got.Message)
	}
}

func TestVerifyGovernmentWarningAbsent(t *testing.T) {
	v := testVerifier(t)
	ev := labelEvidence("EAGLE RARE", "45% ALC/VOL", "750 mL")

	got := v.verifyGovernmentWarning(nil, ev)
	if got.Status != model.StatusNotFound {
		t.Fatalf("status = %q, want not_found", got.Status)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", got.Confidence)
	}
}

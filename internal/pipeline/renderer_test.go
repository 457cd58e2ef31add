package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labelscope/labelscope/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		OverallMatch:    false,
		ConfidenceScore: 0.82,
		ComplianceScore: 50,
		ComplianceGrade: "F",
		FieldResults: []model.FieldResult{
			{FieldName: model.FieldBrandName, Status: model.StatusMatch, Expected: "Eagle Rare", Found: "EAGLE RARE", Confidence: 0.96},
			{FieldName: model.FieldAlcoholContent, Status: model.StatusMismatch, Expected: "45%", Found: "37.5%", Confidence: 0.95},
		},
		Warnings: []string{"Non-standard container size"},
		Errors:   []string{"Alcohol content mismatch"},
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ComplianceGrade != "F" || len(decoded.FieldResults) != 2 {
		t.Errorf("round trip lost data: %+v", decoded)
	}

	// Empty warnings/errors must still serialize as arrays
	empty := &model.Report{Warnings: []string{}, Errors: []string{}}
	data, err = RenderJSON(empty)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if !strings.Contains(string(data), `"warnings": []`) || !strings.Contains(string(data), `"errors": []`) {
		t.Errorf("empty slices must render as []:\n%s", data)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown(sampleReport()))

	for _, want := range []string{
		"# Label Verification Report",
		"**Overall:** MISMATCH",
		"50/100 (grade F)",
		"| brand_name | match | Eagle Rare | EAGLE RARE | 96% |",
		"## Errors",
		"Alcohol content mismatch",
		"## Warnings",
		"Non-standard container size",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownWithSummary(t *testing.T) {
	report := sampleReport()
	report.LLM = &model.LLMSummary{
		Enabled:   true,
		Provider:  "openai",
		SummaryMD: "The label does not support the claimed alcohol content.",
	}

	out := string(RenderMarkdown(report))
	if !strings.Contains(out, "advisory only") || !strings.Contains(out, report.LLM.SummaryMD) {
		t.Errorf("markdown missing summary section:\n%s", out)
	}
}

func TestRenderMarkdownEscapesCells(t *testing.T) {
	report := &model.Report{
		FieldResults: []model.FieldResult{
			{FieldName: model.FieldBrandName, Status: model.StatusMatch, Expected: "Pipe | Brand", Found: "line\nbreak"},
		},
		Warnings: []string{},
		Errors:   []string{},
	}

	out := string(RenderMarkdown(report))
	if !strings.Contains(out, `Pipe \| Brand`) {
		t.Errorf("pipe not escaped:\n%s", out)
	}
	if !strings.Contains(out, "line break") {
		t.Errorf("newline not flattened:\n%s", out)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sampleReport(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.json")

	if err := WriteReport(sampleReport(), FormatJSON, path); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !json.Valid(data) {
		t.Error("written report is not valid JSON")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, sampleReport())

	out := buf.String()
	if !strings.Contains(out, "MISMATCH") || !strings.Contains(out, "[x] alcohol_content") {
		t.Errorf("summary output:\n%s", out)
	}
}

func TestReportPath(t *testing.T) {
	got := ReportPath("reports", "claims/bourbon.yaml", FormatMarkdown)
	if got != filepath.Join("reports", "bourbon.md") {
		t.Errorf("ReportPath = %q", got)
	}

	got = ReportPath("reports", "bourbon.json", FormatJSON)
	if got != filepath.Join("reports", "bourbon.json") {
		t.Errorf("ReportPath = %q", got)
	}
}

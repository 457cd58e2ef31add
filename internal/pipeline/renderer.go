package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Render serializes a report in the requested format
func Render(report *model.Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return RenderJSON(report)
	case FormatMarkdown, "md":
		return RenderMarkdown(report), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (supported: json, markdown)", format)
	}
}

// RenderJSON serializes the report as indented JSON
func RenderJSON(report *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderMarkdown renders the report as a reviewer-friendly document
func RenderMarkdown(report *model.Report) []byte {
	var b strings.Builder

	b.WriteString("# Label Verification Report\n\n")

	outcome := "MISMATCH"
	if report.OverallMatch {
		outcome = "MATCH"
	}
	fmt.Fprintf(&b, "**Overall:** %s  \n", outcome)
	fmt.Fprintf(&b, "**Compliance:** %d/100 (grade %s)  \n", report.ComplianceScore, report.ComplianceGrade)
	fmt.Fprintf(&b, "**Confidence:** %.1f%%\n\n", report.ConfidenceScore*100)

	b.WriteString("| Field | Status | Expected | Found | Confidence |\n")
	b.WriteString("|-------|--------|----------|-------|------------|\n")
	for _, fr := range report.FieldResults {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.0f%% |\n",
			mdCell(fr.FieldName), fr.Status, mdCell(fr.Expected), mdCell(fr.Found), fr.Confidence*100)
	}

	if len(report.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if report.LLM != nil && report.LLM.Enabled {
		fmt.Fprintf(&b, "\n## Summary (%s, advisory only)\n\n%s\n", report.LLM.Provider, report.LLM.SummaryMD)
		for _, w := range report.LLM.Warnings {
			fmt.Fprintf(&b, "\n> %s\n", w)
		}
	}

	return []byte(b.String())
}

// WriteReport renders the report and writes it to path, creating parent
// directories as needed
func WriteReport(report *model.Report, format, path string) error {
	data, err := Render(report, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a one-screen result to w
func RenderSummary(w io.Writer, report *model.Report) {
	outcome := "MISMATCH"
	if report.OverallMatch {
		outcome = "MATCH"
	}

	fmt.Fprintf(w, "%s  compliance %d/100 (grade %s)\n", outcome, report.ComplianceScore, report.ComplianceGrade)
	for _, fr := range report.FieldResults {
		marker := " "
		switch fr.Status {
		case model.StatusMismatch, model.StatusError:
			marker = "x"
		case model.StatusWarning, model.StatusNotFound:
			marker = "!"
		}
		fmt.Fprintf(w, " [%s] %-20s %s\n", marker, fr.FieldName, fr.Status)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(w, " error: %s\n", e)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, " warning: %s\n", warning)
	}
}

// mdCell makes a value safe inside a markdown table cell
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

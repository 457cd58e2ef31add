// Package llm provides optional plain-language summaries of verification
// reports. Summaries are advisory text only; they never change a field
// verdict or the compliance score.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the verification report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for report summarization
type SummarizeRequest struct {
	// Report is the verification report to summarize
	Report *model.Report

	// BrandName and ProductType give the summary its subject line
	BrandName   string
	ProductType model.ProductType

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated markdown summary
	Summary string

	// Warnings notes disagreements between the summary and the report,
	// e.g. the model asserting a different grade than was computed
	Warnings []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt constructs the default summarization prompt. The model is
// constrained to the field results it is given: it must not invent
// regulatory conclusions or grades.
func BuildPrompt(req SummarizeRequest) string {
	report := req.Report

	var b strings.Builder
	fmt.Fprintf(&b, `You are summarizing an alcohol label verification report for %q (%s).
The report compares what the applicant claimed against what OCR read off the label.

RULES:
1. Describe only the field results listed below. Do not invent findings.
2. The compliance grade is %s (%d%%). State it as computed; never assign your own.
3. Use cautious language: "the label text did not contain...", never "the product is illegal".
4. Keep it to 4-6 sentences of plain prose, leading with the overall outcome.

Overall match: %t
Compliance: %d/100 (grade %s)

Field results:
`, req.BrandName, req.ProductType, report.ComplianceGrade, report.ComplianceScore,
		report.OverallMatch, report.ComplianceScore, report.ComplianceGrade)

	for _, fr := range report.FieldResults {
		fmt.Fprintf(&b, "- %s: %s", fr.FieldName, fr.Status)
		if fr.Message != "" {
			fmt.Fprintf(&b, " (%s)", fr.Message)
		}
		b.WriteString("\n")
	}

	if len(report.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	if len(report.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	b.WriteString("\nWrite the summary now.")

	return b.String()
}

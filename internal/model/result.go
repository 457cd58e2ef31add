package model

// Status is the verdict for a single label field
type Status string

const (
	StatusMatch    Status = "match"     // claim confirmed on the label
	StatusMismatch Status = "mismatch"  // label states a conflicting value
	StatusNotFound Status = "not_found" // field absent from the label text
	StatusWarning  Status = "warning"   // present but with a quality concern
	StatusError    Status = "error"     // the claim itself is malformed or inconsistent
)

func (s Status) String() string {
	return string(s)
}

// Sentinel Expected values. NOT_FOUND forfeits a field's weight unless the
// expected value is one of these, meaning absence was the correct outcome.
const (
	ExpectedNotRequired     = "Not required"
	ExpectedNotProvided     = "Not provided"
	ExpectedNotApplicable   = "Not applicable"
	ExpectedDomesticProduct = "Domestic product"
)

// Field names as they appear in reports and in the scoring weight table
const (
	FieldBrandName           = "brand_name"
	FieldProductClass        = "product_class"
	FieldAlcoholContent      = "alcohol_content"
	FieldNetContents         = "net_contents"
	FieldGovernmentWarning   = "government_warning"
	FieldAgeStatement        = "age_statement"
	FieldProof               = "proof"
	FieldSulfites            = "sulfites"
	FieldVintage             = "vintage"
	FieldCountryOfOrigin     = "country_of_origin"
	FieldStateOfDistillation = "state_of_distillation"
	FieldAppellation         = "appellation"
	FieldStyle               = "style"
)

// FieldResult is the verdict for one label field: what was claimed, what the
// label shows, how confident the match is, and where on the image it was
// found. Location is UI decoration only.
type FieldResult struct {
	FieldName           string       `json:"field_name"`
	Status              Status       `json:"status"`
	Expected            string       `json:"expected"`
	Found               string       `json:"found,omitempty"`
	Confidence          float64      `json:"confidence"`
	Location            *BoundingBox `json:"location,omitempty"`
	Message             string       `json:"message"`
	RegulatoryReference string       `json:"regulatory_reference,omitempty"`
}

// Report is the complete outcome of one verification call
type Report struct {
	OverallMatch    bool          `json:"overall_match"`
	ConfidenceScore float64       `json:"confidence_score"`
	FieldResults    []FieldResult `json:"field_results"`
	ComplianceScore int           `json:"compliance_score"`
	ComplianceGrade string        `json:"compliance_grade"`

	// Warnings and Errors are always present in JSON, even when empty
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`

	OCRFullText      string `json:"ocr_full_text,omitempty"`
	ProcessingTimeMS int64  `json:"processing_time_ms,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects score)
}

// LLMSummary contains optional LLM-generated commentary on a report
// CRITICAL: This never affects verdicts, score, or grade
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// FieldByName returns the result for a named field, or nil if absent
func (r *Report) FieldByName(name string) *FieldResult {
	for i := range r.FieldResults {
		if r.FieldResults[i].FieldName == name {
			return &r.FieldResults[i]
		}
	}
	return nil
}

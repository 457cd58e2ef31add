// Package score turns per-field verification results into a weighted
// compliance score and letter grade. Scoring is pure and total: any list
// of field results yields a score.
package score

import "github.com/labelscope/labelscope/internal/model"

// Field weights. Critical fields dominate the score; unrecognized field
// names still count, at a low default weight, so custom checks can never
// inflate the percentage by being ignored.
const (
	weightCritical  = 40
	weightImportant = 20
	weightOptional  = 10
	weightDefault   = 5
)

// Fraction of a field's weight earned on a WARNING result
const warningCredit = 0.8

var criticalFields = map[string]bool{
	model.FieldBrandName:         true,
	model.FieldAlcoholContent:    true,
	model.FieldProductClass:      true,
	model.FieldGovernmentWarning: true,
}

var importantFields = map[string]bool{
	model.FieldNetContents: true,
	model.FieldSulfites:    true,
}

var optionalFields = map[string]bool{
	model.FieldAgeStatement:        true,
	model.FieldProof:               true,
	model.FieldVintage:             true,
	model.FieldCountryOfOrigin:     true,
	model.FieldStateOfDistillation: true,
	model.FieldAppellation:         true,
	model.FieldStyle:               true,
}

// NOT_FOUND earns full weight only when absence was the correct outcome,
// marked by one of the sentinel expected values
var absenceSentinels = map[string]bool{
	model.ExpectedNotRequired:     true,
	model.ExpectedNotProvided:     true,
	model.ExpectedNotApplicable:   true,
	model.ExpectedDomesticProduct: true,
}

// Result is the transparent scoring breakdown
type Result struct {
	Earned     int     `json:"earned"`
	Possible   int     `json:"possible"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

// FieldWeight returns the weight a named field carries
func FieldWeight(fieldName string) int {
	switch {
	case criticalFields[fieldName]:
		return weightCritical
	case importantFields[fieldName]:
		return weightImportant
	case optionalFields[fieldName]:
		return weightOptional
	default:
		return weightDefault
	}
}

// Calculate aggregates field results into a 0-100 compliance percentage
// and letter grade. MATCH earns the full weight, WARNING 80% of it,
// MISMATCH and ERROR nothing. NOT_FOUND earns the full weight only when
// the expected value is an absence sentinel.
func Calculate(results []model.FieldResult) Result {
	earned := 0
	possible := 0

	for _, fr := range results {
		weight := FieldWeight(fr.FieldName)
		possible += weight

		switch fr.Status {
		case model.StatusMatch:
			earned += weight
		case model.StatusWarning:
			earned += int(float64(weight) * warningCredit)
		case model.StatusNotFound:
			if absenceSentinels[fr.Expected] {
				earned += weight
			}
		case model.StatusMismatch, model.StatusError:
			// no credit
		}
	}

	percentage := 0.0
	if possible > 0 {
		percentage = float64(earned) / float64(possible) * 100
	}

	return Result{
		Earned:     earned,
		Possible:   possible,
		Percentage: percentage,
		Grade:      Grade(percentage),
	}
}

// Grade maps a compliance percentage to a letter grade
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

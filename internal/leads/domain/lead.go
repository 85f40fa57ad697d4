// Package domain holds the value types shared by the scoring engine and its
// collaborators. None of them carry identity; they live for one scoring run.
package domain

// Offer describes the product and the ideal customer profile leads are
// scored against.
type Offer struct {
	Name          string   `json:"name" yaml:"name"`
	ValueProps    []string `json:"value_props" yaml:"value_props"`
	IdealUseCases []string `json:"ideal_use_cases" yaml:"ideal_use_cases"`
}

// Lead is one prospect row. Missing attributes are empty strings.
type Lead struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	LinkedInBio string `json:"linkedin_bio"`
}

// Intent is the categorical buying-intent classification.
type Intent string

const (
	IntentHigh   Intent = "High"
	IntentMedium Intent = "Medium"
	IntentLow    Intent = "Low"
)

// Points maps an intent to the score it contributes. Anything that is not
// High or Medium counts as Low.
func (i Intent) Points() int {
	switch i {
	case IntentHigh:
		return 50
	case IntentMedium:
		return 30
	default:
		return 10
	}
}

// ScoreResult is the per-lead output of a scoring run.
type ScoreResult struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Intent    Intent `json:"intent"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// MaxScore caps the final score.
const MaxScore = 100

package scoring

import (
	"fmt"
	"strings"

	"lead_scoring_backend/internal/leads/domain"
)

const (
	decisionMakerPoints = 20
	influencerPoints    = 10

	industryExactPoints   = 20
	industryPartialPoints = 10

	completenessPoints = 10

	// MaxRuleScore is the ceiling of the rule layer.
	MaxRuleScore = decisionMakerPoints + industryExactPoints + completenessPoints
)

var decisionMakerKeywords = []string{
	"ceo", "founder", "co-founder", "cto", "cfo", "chief", "head of", "vp",
	"vice president", "director", "owner", "managing director", "president", "head",
}

var influencerKeywords = []string{
	"manager", "lead", "principal", "senior", "associate", "specialist",
	"analyst", "coordinator", "consultant", "evangelist", "growth",
}

// industrySynonyms maps a term that may appear in an ideal use case to
// industry words that should count as a partial match for it.
var industrySynonyms = []struct {
	key   string
	terms []string
}{
	{key: "saas", terms: []string{"software", "cloud"}},
	{key: "healthcare", terms: []string{"health", "medical"}},
	{key: "fintech", terms: []string{"finance", "bank", "financial"}},
}

// Breakdown is the rule layer of a lead's score.
type Breakdown struct {
	Role         int `json:"role"`
	Industry     int `json:"industry"`
	Completeness int `json:"completeness"`
}

// Total sums the sub-scores.
func (b Breakdown) Total() int {
	return b.Role + b.Industry + b.Completeness
}

// RuleScore computes the deterministic 0-50 prior for a lead.
func RuleScore(lead domain.Lead, offer domain.Offer) Breakdown {
	b := Breakdown{
		Role:         RoleRelevance(lead.Role),
		Industry:     IndustryMatch(lead.Industry, offer),
		Completeness: DataCompleteness(lead),
	}
	if total := b.Total(); total < 0 || total > MaxRuleScore {
		panic(fmt.Sprintf("rule score %d outside [0,%d]", total, MaxRuleScore))
	}
	return b
}

// RoleRelevance awards 20 for decision makers, 10 for influencers and 0
// otherwise. Decision-maker keywords win when both sets match.
func RoleRelevance(role string) int {
	if role == "" {
		return 0
	}
	r := strings.ToLower(role)
	switch {
	case containsAny(r, decisionMakerKeywords):
		return decisionMakerPoints
	case containsAny(r, influencerKeywords):
		return influencerPoints
	default:
		return 0
	}
}

// IndustryMatch compares the lead's industry with the offer's ideal use
// cases: exact match 20, substring either way 10, synonym hit 10, else 0.
func IndustryMatch(industry string, offer domain.Offer) int {
	if industry == "" {
		return 0
	}
	lead := strings.ToLower(industry)
	cases := make([]string, len(offer.IdealUseCases))
	for i, c := range offer.IdealUseCases {
		cases[i] = strings.ToLower(c)
	}

	for _, ic := range cases {
		if lead == ic {
			return industryExactPoints
		}
	}
	for _, ic := range cases {
		if strings.Contains(lead, ic) || strings.Contains(ic, lead) {
			return industryPartialPoints
		}
	}
	for _, syn := range industrySynonyms {
		if anyContains(cases, syn.key) && containsAny(lead, syn.terms) {
			return industryPartialPoints
		}
	}
	return 0
}

// DataCompleteness is all-or-nothing: 10 only when every field is non-blank.
func DataCompleteness(lead domain.Lead) int {
	fields := []string{lead.Name, lead.Role, lead.Company, lead.Industry, lead.Location, lead.LinkedInBio}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return 0
		}
	}
	return completenessPoints
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(v, needle) {
			return true
		}
	}
	return false
}

package scoring

import (
	"testing"

	"lead_scoring_backend/internal/leads/domain"

	"github.com/stretchr/testify/assert"
)

func completeLead() domain.Lead {
	return domain.Lead{
		Name:        "Ava Patel",
		Role:        "Head of Growth",
		Company:     "FlowMetrics",
		Industry:    "SaaS",
		Location:    "Mumbai",
		LinkedInBio: "Growth leader scaling B2B SaaS teams",
	}
}

func TestRoleRelevance(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{"CEO", 20},
		{"Head of Growth", 20},
		{"Co-Founder & CTO", 20},
		{"VP Sales", 20},
		{"Marketing Manager", 10},
		{"Senior Analyst", 10},
		{"Growth Hacker", 10},
		{"Software Engineer", 0},
		{"", 0},
		// "director" contains "cto"; decision makers win either way
		{"Art Director", 20},
		// decision maker set is checked before influencers
		{"Senior Vice President", 20},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RoleRelevance(tc.role), "role %q", tc.role)
	}
}

func TestIndustryMatch(t *testing.T) {
	offer := domain.Offer{Name: "Acme", IdealUseCases: []string{"B2B SaaS mid-market", "Fintech"}}

	cases := []struct {
		industry string
		want     int
	}{
		{"fintech", 20},
		{"FINTECH", 20},
		{"SaaS", 10},             // substring of an ideal use case
		{"Fintech startups", 10}, // contains an ideal use case
		{"Software", 10},         // synonym of saas
		{"Cloud hosting", 10},
		{"Banking", 10},   // synonym of fintech
		{"Retail", 0},
		{"", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IndustryMatch(tc.industry, offer), "industry %q", tc.industry)
	}
}

func TestIndustryMatchPrefersExactOverEarlierPartial(t *testing.T) {
	offer := domain.Offer{IdealUseCases: []string{"healthcare software", "healthcare"}}
	assert.Equal(t, 20, IndustryMatch("Healthcare", offer))
}

func TestIndustryMatchSynonymNeedsKeyInUseCases(t *testing.T) {
	offer := domain.Offer{IdealUseCases: []string{"Retail"}}
	assert.Equal(t, 0, IndustryMatch("Software", offer))

	offer = domain.Offer{IdealUseCases: []string{"Healthcare providers"}}
	assert.Equal(t, 10, IndustryMatch("Medical devices", offer))
}

func TestDataCompleteness(t *testing.T) {
	full := completeLead()
	assert.Equal(t, 10, DataCompleteness(full))

	blankers := map[string]func(*domain.Lead){
		"name":         func(l *domain.Lead) { l.Name = "" },
		"role":         func(l *domain.Lead) { l.Role = "  " },
		"company":      func(l *domain.Lead) { l.Company = "" },
		"industry":     func(l *domain.Lead) { l.Industry = "\t" },
		"location":     func(l *domain.Lead) { l.Location = "" },
		"linkedin_bio": func(l *domain.Lead) { l.LinkedInBio = " \n" },
	}
	for field, blank := range blankers {
		lead := completeLead()
		blank(&lead)
		assert.Equal(t, 0, DataCompleteness(lead), "blank %s", field)
	}
}

func TestRuleScoreIsPureAndBounded(t *testing.T) {
	offer := domain.Offer{Name: "Acme", IdealUseCases: []string{"SaaS"}}
	lead := completeLead()

	first := RuleScore(lead, offer)
	second := RuleScore(lead, offer)
	assert.Equal(t, first, second)
	assert.Equal(t, Breakdown{Role: 20, Industry: 20, Completeness: 10}, first)
	assert.Equal(t, MaxRuleScore, first.Total())

	assert.Equal(t, 0, RuleScore(domain.Lead{}, offer).Total())
}

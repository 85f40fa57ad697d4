package csvio

import (
	"bytes"
	"strings"
	"testing"

	"lead_scoring_backend/internal/leads/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeads(t *testing.T) {
	input := "\xEF\xBB\xBF Name ,ROLE,company,Industry,location,linkedin_bio,extra\n" +
		"Ava Patel , Head of Growth,FlowMetrics,SaaS,Mumbai,\"Growth leader, B2B\",x\n" +
		"Ben,CTO,Acme\n"

	leads, err := ParseLeads(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, domain.Lead{
		Name:        "Ava Patel",
		Role:        "Head of Growth",
		Company:     "FlowMetrics",
		Industry:    "SaaS",
		Location:    "Mumbai",
		LinkedInBio: "Growth leader, B2B",
	}, leads[0])
	assert.Equal(t, domain.Lead{Name: "Ben", Role: "CTO", Company: "Acme"}, leads[1])
}

func TestParseLeadsMissingColumns(t *testing.T) {
	leads, err := ParseLeads(strings.NewReader("name,notes\nAva,likes tea\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Lead{{Name: "Ava"}}, leads)
}

func TestParseLeadsEmpty(t *testing.T) {
	leads, err := ParseLeads(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)

	leads, err = ParseLeads(strings.NewReader("name,role\n"))
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestParseLeadsMalformed(t *testing.T) {
	_, err := ParseLeads(strings.NewReader("name,role\n\"Ava,CEO\nBen,\"CTO\"x\"\n"))
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResults(&buf, []domain.ScoreResult{
		{Name: "A", Role: "CEO", Company: "B", Intent: domain.IntentHigh, Score: 90, Reasoning: "Fit, strong"},
		{Name: "C", Intent: domain.IntentLow, Score: 10},
	})
	require.NoError(t, err)

	want := "name,role,company,intent,score,reasoning\n" +
		"A,CEO,B,High,90,\"Fit, strong\"\n" +
		"C,,,Low,10,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, nil))
	assert.Equal(t, "name,role,company,intent,score,reasoning\n", buf.String())
}

func TestWriteResultsNeutralisesFormulas(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResults(&buf, []domain.ScoreResult{
		{Name: "=cmd()", Company: "@corp", Intent: domain.IntentLow, Score: 10, Reasoning: "ok"},
	})
	require.NoError(t, err)
	assert.Equal(t, "name,role,company,intent,score,reasoning\n'=cmd(),,'@corp,Low,10,ok\n", buf.String())
}

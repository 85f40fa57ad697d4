package scoring

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records prompts and replies with a fixed answer.
type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func TestHeuristicIntentThresholds(t *testing.T) {
	offer := domain.Offer{Name: "Acme", IdealUseCases: []string{"SaaS"}}

	cases := []struct {
		name string
		lead domain.Lead
		want domain.Intent
	}{
		{"complete decision maker in icp", completeLead(), domain.IntentHigh},
		{"decision maker, partial industry, complete", domain.Lead{Name: "A", Role: "CEO", Company: "B", Industry: "Software", Location: "C", LinkedInBio: "D"}, domain.IntentHigh},
		{"influencer in icp, incomplete", domain.Lead{Role: "Manager", Industry: "SaaS"}, domain.IntentMedium},
		{"decision maker only", domain.Lead{Role: "Founder"}, domain.IntentMedium},
		{"influencer only", domain.Lead{Role: "Manager"}, domain.IntentLow},
		{"nothing", domain.Lead{}, domain.IntentLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HeuristicIntent(tc.lead, offer))
		})
	}
}

func TestAIClassifierParsesReply(t *testing.T) {
	gen := &stubGenerator{reply: "  Intent: Medium\nExplanation: Good fit but mid-level role.\n"}
	c := NewAIClassifier(gen)

	lead := completeLead()
	offer := domain.Offer{Name: "Acme", IdealUseCases: []string{"SaaS"}}
	got, err := c.Classify(context.Background(), lead, offer)

	require.NoError(t, err)
	assert.Equal(t, domain.IntentMedium, got.Intent)
	assert.Equal(t, "Good fit but mid-level role.", got.Explanation)
	assert.Equal(t, SourceAI, got.Source)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, BuildPrompt(lead, offer), gen.prompts[0])
}

func TestAIClassifierReturnsProviderError(t *testing.T) {
	boom := errors.New("provider down")
	c := NewAIClassifier(&stubGenerator{err: boom})

	_, err := c.Classify(context.Background(), completeLead(), domain.Offer{})
	assert.ErrorIs(t, err, boom)
}

func TestWithFallbackUsesFallbackAndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("production", &buf)

	primary := ClassifierFunc(func(context.Context, domain.Lead, domain.Offer) (Classification, error) {
		return Classification{}, errors.New("timeout")
	})
	fallback := Heuristic{Explanation: ExplanationProviderFailed, Source: SourceFallback}

	c := WithFallback(primary, fallback, "gemini", log)
	got, err := c.Classify(context.Background(), completeLead(), domain.Offer{IdealUseCases: []string{"SaaS"}})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentHigh, got.Intent)
	assert.Equal(t, ExplanationProviderFailed, got.Explanation)
	assert.Equal(t, SourceFallback, got.Source)
	assert.Contains(t, buf.String(), "classifier_call_failed")
	assert.Contains(t, buf.String(), `"provider":"gemini"`)
}

func TestWithFallbackPassesThroughSuccess(t *testing.T) {
	want := Classification{Intent: domain.IntentLow, Explanation: "not a fit", Source: SourceAI}
	primary := ClassifierFunc(func(context.Context, domain.Lead, domain.Offer) (Classification, error) {
		return want, nil
	})
	fallback := ClassifierFunc(func(context.Context, domain.Lead, domain.Offer) (Classification, error) {
		t.Fatal("fallback must not run when primary succeeds")
		return Classification{}, nil
	})

	got, err := WithFallback(primary, fallback, "gemini", nil).Classify(context.Background(), domain.Lead{}, domain.Offer{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewClassifierWithoutGeneratorIsHeuristic(t *testing.T) {
	c := NewClassifier(nil, "gemini", nil)

	got, err := c.Classify(context.Background(), completeLead(), domain.Offer{IdealUseCases: []string{"SaaS"}})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentHigh, got.Intent)
	assert.Equal(t, ExplanationNoCredential, got.Explanation)
	assert.Equal(t, SourceHeuristic, got.Source)
}

func TestNewClassifierFallsBackOnProviderError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	c := NewClassifier(gen, "moonshot", logger.Discard())

	got, err := c.Classify(context.Background(), domain.Lead{Role: "Manager"}, domain.Offer{})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentLow, got.Intent)
	assert.Equal(t, ExplanationProviderFailed, got.Explanation)
	assert.Equal(t, 1, gen.calls())
}

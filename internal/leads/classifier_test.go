package leads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/internal/leads/scoring"
	"lead_scoring_backend/platform/ai/gemini"
	"lead_scoring_backend/platform/ai/moonshot"
	"lead_scoring_backend/platform/config"
	"lead_scoring_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewClassifierWithoutCredential(t *testing.T) {
	cfg := &config.Config{AIProvider: config.ProviderGemini}

	c, cleanup, err := NewClassifier(t.Context(), cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()

	got, err := c.Classify(t.Context(), domain.Lead{Role: "CEO"}, domain.Offer{})
	require.NoError(t, err)
	assert.Equal(t, scoring.ExplanationNoCredential, got.Explanation)
	assert.Equal(t, domain.IntentMedium, got.Intent)
}

func TestNewClassifierFallsBackWhenProviderUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		AIProvider:       config.ProviderMoonshot,
		MoonshotAPIKey:   "test-key",
		MoonshotModel:    config.DefaultMoonshotModel,
		AITimeout:        time.Second,
		AIRateLimitRPS:   100,
		AIRateLimitBurst: 5,
		RedisURL:         "redis://" + mr.Addr(),
		AICacheTTL:       time.Minute,
	}

	c, cleanup, err := NewClassifier(t.Context(), cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()

	// A cancelled context makes the provider call fail without network.
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	got, err := c.Classify(ctx, domain.Lead{Role: "Manager"}, domain.Offer{})
	require.NoError(t, err)
	assert.Equal(t, scoring.ExplanationProviderFailed, got.Explanation)
	assert.Equal(t, domain.IntentLow, got.Intent)
	assert.Empty(t, mr.Keys())
}

func TestNewClassifierCacheUnavailableIsNotFatal(t *testing.T) {
	cfg := &config.Config{
		AIProvider:   config.ProviderGemini,
		GeminiAPIKey: "test-key",
		GeminiModel:  config.DefaultGeminiModel,
		RedisURL:     "redis://127.0.0.1:1",
		AICacheTTL:   time.Minute,
	}

	c, cleanup, err := NewClassifier(t.Context(), cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, c)
}

func TestNewClassifierUnknownProvider(t *testing.T) {
	cfg := &config.Config{AIProvider: "other", GeminiAPIKey: "k"}

	_, cleanup, err := NewClassifier(t.Context(), cfg, logger.Discard())
	assert.Error(t, err)
	assert.NotNil(t, cleanup)
}

func TestProvidersTreatEmptyReplyAlike(t *testing.T) {
	reply := func(body string) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	kimiSrv := reply(`{"choices":[{"message":{"role":"assistant","content":""}}]}`)
	geminiSrv := reply(`{"candidates":[{"content":{"role":"model","parts":[{"text":""}]}}]}`)

	kimi := moonshot.NewModel(moonshot.Config{APIKey: "k", BaseURL: kimiSrv.URL})
	gem, err := gemini.New(t.Context(), gemini.Config{APIKey: "k", HTTPOptions: genai.HTTPOptions{BaseURL: geminiSrv.URL}})
	require.NoError(t, err)

	lead := domain.Lead{Name: "A", Role: "CEO", Company: "B", Industry: "Software"}
	offer := domain.Offer{Name: "Acme", IdealUseCases: []string{"SaaS"}}

	fromKimi, err := scoring.NewClassifier(kimi, config.ProviderMoonshot, logger.Discard()).Classify(t.Context(), lead, offer)
	require.NoError(t, err)
	fromGemini, err := scoring.NewClassifier(gem, config.ProviderGemini, logger.Discard()).Classify(t.Context(), lead, offer)
	require.NoError(t, err)

	assert.Equal(t, scoring.ExplanationProviderFailed, fromKimi.Explanation)
	assert.Equal(t, fromGemini, fromKimi)
}

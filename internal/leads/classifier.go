package leads

import (
	"context"
	"fmt"

	"lead_scoring_backend/internal/leads/scoring"
	"lead_scoring_backend/platform/ai"
	"lead_scoring_backend/platform/ai/cache"
	"lead_scoring_backend/platform/ai/gemini"
	"lead_scoring_backend/platform/ai/moonshot"
	"lead_scoring_backend/platform/ai/ratelimit"
	"lead_scoring_backend/platform/config"
	"lead_scoring_backend/platform/logger"
)

// ClassifierConfig is the config slice needed to build the classifier chain.
type ClassifierConfig interface {
	config.AIConfig
	config.CacheConfig
}

// NewClassifier builds the classification chain for the configured provider:
// cache, then provider rate limit, then instrumented provider call, all
// behind the heuristic fallback. Without a credential no provider client is
// created. The returned cleanup func is never nil.
func NewClassifier(ctx context.Context, cfg ClassifierConfig, log *logger.Logger) (scoring.Classifier, func(), error) {
	provider := cfg.GetAIProvider()
	cleanup := func() {}

	if !cfg.IsAIEnabled() {
		log.Warn("AI credential not set; using heuristic classification", "provider", provider)
		return scoring.NewClassifier(nil, provider, log), cleanup, nil
	}

	base, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, cleanup, err
	}

	var gen ai.Generator = ai.Instrument(base, provider)
	if rps := cfg.GetAIRateLimitRPS(); rps > 0 {
		gen = ratelimit.New(gen, rps, cfg.GetAIRateLimitBurst())
	}

	if cfg.IsCacheEnabled() {
		rdb, err := cache.Connect(ctx, cfg.GetRedisURL())
		if err != nil {
			log.Warn("classification cache disabled", "error", err)
		} else {
			gen = cache.New(gen, rdb, cfg.GetAICacheTTL(), provider+"/"+cfg.GetAIModel(), log)
			cleanup = func() { _ = rdb.Close() }
		}
	}

	log.Info("AI classification enabled", "provider", provider, "model", cfg.GetAIModel())
	return scoring.NewClassifier(gen, provider, log), cleanup, nil
}

func newProvider(ctx context.Context, cfg config.AIConfig) (ai.Generator, error) {
	switch cfg.GetAIProvider() {
	case config.ProviderMoonshot:
		return moonshot.NewModel(moonshot.Config{
			APIKey:  cfg.GetAIAPIKey(),
			Model:   cfg.GetAIModel(),
			Timeout: cfg.GetAITimeout(),
		}), nil
	case config.ProviderGemini:
		return gemini.New(ctx, gemini.Config{
			APIKey:  cfg.GetAIAPIKey(),
			Model:   cfg.GetAIModel(),
			Timeout: cfg.GetAITimeout(),
		})
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.GetAIProvider())
	}
}

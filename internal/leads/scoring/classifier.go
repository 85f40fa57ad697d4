package scoring

import (
	"context"
	"strings"

	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/platform/logger"
)

// Explanations attached to heuristic classifications, one per degradation path.
const (
	ExplanationNoCredential   = "Fallback heuristic used because credential not set."
	ExplanationProviderFailed = "External classification failed; used heuristic."
	ExplanationGuardFallback  = "classification failed; fallback used"
)

// Classification sources, used for metrics and run summaries.
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
	SourceFallback  = "fallback"
)

// Heuristic thresholds on the rule score.
const (
	highIntentThreshold   = 35
	mediumIntentThreshold = 20
)

// TextGenerator is the external classifier: one prompt in, free text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier produces an intent for one lead.
type Classifier interface {
	Classify(ctx context.Context, lead domain.Lead, offer domain.Offer) (Classification, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, lead domain.Lead, offer domain.Offer) (Classification, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, lead domain.Lead, offer domain.Offer) (Classification, error) {
	return f(ctx, lead, offer)
}

// HeuristicIntent maps the rule score onto an intent without any network call.
func HeuristicIntent(lead domain.Lead, offer domain.Offer) domain.Intent {
	score := RuleScore(lead, offer).Total()
	switch {
	case score >= highIntentThreshold:
		return domain.IntentHigh
	case score >= mediumIntentThreshold:
		return domain.IntentMedium
	default:
		return domain.IntentLow
	}
}

// Heuristic classifies from the rule score and never fails.
type Heuristic struct {
	Explanation string
	Source      string
}

// Classify implements Classifier.
func (h Heuristic) Classify(_ context.Context, lead domain.Lead, offer domain.Offer) (Classification, error) {
	return Classification{
		Intent:      HeuristicIntent(lead, offer),
		Explanation: h.Explanation,
		Source:      h.Source,
	}, nil
}

// AIClassifier asks the external model and parses its answer.
type AIClassifier struct {
	gen TextGenerator
}

// NewAIClassifier wraps a text generator.
func NewAIClassifier(gen TextGenerator) *AIClassifier {
	return &AIClassifier{gen: gen}
}

// Classify implements Classifier. Provider errors are returned unchanged so
// a fallback decorator can handle them.
func (c *AIClassifier) Classify(ctx context.Context, lead domain.Lead, offer domain.Offer) (Classification, error) {
	text, err := c.gen.Generate(ctx, BuildPrompt(lead, offer))
	if err != nil {
		return Classification{}, err
	}
	result := ParseResponse(strings.TrimSpace(text))
	result.Source = SourceAI
	return result, nil
}

// WithFallback returns a Classifier that answers with fallback whenever
// primary fails. The failure is logged as a warning and not propagated.
func WithFallback(primary, fallback Classifier, provider string, log *logger.Logger) Classifier {
	return ClassifierFunc(func(ctx context.Context, lead domain.Lead, offer domain.Offer) (Classification, error) {
		result, err := primary.Classify(ctx, lead, offer)
		if err == nil {
			return result, nil
		}
		if log != nil {
			log.WithContext(ctx).ProviderFailure(provider, err)
		}
		return fallback.Classify(ctx, lead, offer)
	})
}

// NewClassifier wires the classification chain. A nil generator means no
// credential is configured: every lead goes straight to the heuristic.
func NewClassifier(gen TextGenerator, provider string, log *logger.Logger) Classifier {
	if gen == nil {
		return Heuristic{Explanation: ExplanationNoCredential, Source: SourceHeuristic}
	}
	return WithFallback(
		NewAIClassifier(gen),
		Heuristic{Explanation: ExplanationProviderFailed, Source: SourceFallback},
		provider,
		log,
	)
}

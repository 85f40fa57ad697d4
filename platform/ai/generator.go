// Package ai holds the provider-neutral text generator contract and the
// decorators every provider is wrapped in.
package ai

import (
	"context"
	"time"

	"lead_scoring_backend/platform/metrics"
)

// Generator turns one prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Instrument records call counts and latency for provider.
func Instrument(next Generator, provider string) Generator {
	return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		start := time.Now()
		text, err := next.Generate(ctx, prompt)
		metrics.ClassifierCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ClassifierCalls.WithLabelValues(provider, outcome).Inc()
		return text, err
	})
}

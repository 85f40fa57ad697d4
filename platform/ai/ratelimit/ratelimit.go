// Package ratelimit throttles outbound provider calls so a large upload does
// not trip the provider's quota.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"lead_scoring_backend/platform/ai"
)

// Generator waits on a token bucket before every call.
type Generator struct {
	next    ai.Generator
	limiter *rate.Limiter
}

// New allows rps calls per second with the given burst. rps <= 0 disables
// limiting.
func New(next ai.Generator, rps float64, burst int) *Generator {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Generator{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Generate implements ai.Generator. A cancelled context while waiting is
// returned as an error.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("provider rate limit: %w", err)
	}
	return g.next.Generate(ctx, prompt)
}

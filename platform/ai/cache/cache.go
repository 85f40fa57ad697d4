// Package cache memoises generator replies in Redis, keyed by a hash of the
// prompt. Identical leads scored against the same offer skip the provider.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lead_scoring_backend/platform/ai"
	"lead_scoring_backend/platform/logger"
	"lead_scoring_backend/platform/metrics"
)

const keyPrefix = "lead-intent:"

// Generator wraps another generator with a Redis read-through cache.
// Redis failures are logged and bypassed; they never fail a generation.
type Generator struct {
	next      ai.Generator
	rdb       redis.UniversalClient
	ttl       time.Duration
	namespace string
	log       *logger.Logger
}

// New wraps next. namespace separates entries per provider and model so a
// model switch does not serve stale answers.
func New(next ai.Generator, rdb redis.UniversalClient, ttl time.Duration, namespace string, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{next: next, rdb: rdb, ttl: ttl, namespace: namespace, log: log}
}

// Key returns the Redis key used for prompt.
func (g *Generator) Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return keyPrefix + g.namespace + ":" + hex.EncodeToString(sum[:])
}

// Generate implements ai.Generator.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	key := g.Key(prompt)

	cached, err := g.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		metrics.ClassificationCache.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, redis.Nil):
		metrics.ClassificationCache.WithLabelValues("miss").Inc()
	default:
		metrics.ClassificationCache.WithLabelValues("error").Inc()
		g.log.WithContext(ctx).Warn("classification cache read failed", "error", err)
	}

	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := g.rdb.Set(ctx, key, text, g.ttl).Err(); err != nil {
		g.log.WithContext(ctx).Warn("classification cache write failed", "error", err)
	}
	return text, nil
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

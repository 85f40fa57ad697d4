// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetMaxUploadBytes() int64
}

// AIConfig provides settings for the external intent classifier.
type AIConfig interface {
	GetAIProvider() string
	GetAIAPIKey() string
	GetAIModel() string
	GetAITimeout() time.Duration
	GetAIRateLimitRPS() float64
	GetAIRateLimitBurst() int
	IsAIEnabled() bool
}

// CacheConfig provides settings for the classification cache.
type CacheConfig interface {
	GetRedisURL() string
	GetAICacheTTL() time.Duration
	IsCacheEnabled() bool
}

// ScoringConfig provides settings for the batch scoring driver.
type ScoringConfig interface {
	GetScoringConcurrency() int
}

const (
	ProviderGemini   = "gemini"
	ProviderMoonshot = "moonshot"

	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultMoonshotModel = "kimi-k2-turbo-preview"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	RateLimitRPS       float64
	MaxUploadBytes     int64
	AIProvider         string
	GeminiAPIKey       string
	GeminiModel        string
	MoonshotAPIKey     string
	MoonshotModel      string
	AITimeout          time.Duration
	AIRateLimitRPS     float64
	AIRateLimitBurst   int
	RedisURL           string
	AICacheTTL         time.Duration
	ScoringConcurrency int
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetMaxUploadBytes() int64 { return c.MaxUploadBytes }

// AIConfig implementation
func (c *Config) GetAIProvider() string        { return c.AIProvider }
func (c *Config) GetAITimeout() time.Duration  { return c.AITimeout }
func (c *Config) GetAIRateLimitRPS() float64   { return c.AIRateLimitRPS }
func (c *Config) GetAIRateLimitBurst() int     { return c.AIRateLimitBurst }
func (c *Config) IsAIEnabled() bool            { return c.GetAIAPIKey() != "" }

// GetAIAPIKey returns the credential of the selected provider.
func (c *Config) GetAIAPIKey() string {
	if c.AIProvider == ProviderMoonshot {
		return c.MoonshotAPIKey
	}
	return c.GeminiAPIKey
}

// GetAIModel returns the model identifier of the selected provider.
func (c *Config) GetAIModel() string {
	if c.AIProvider == ProviderMoonshot {
		return c.MoonshotModel
	}
	return c.GeminiModel
}

// CacheConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetAICacheTTL() time.Duration { return c.AICacheTTL }
func (c *Config) IsCacheEnabled() bool         { return c.RedisURL != "" && c.AICacheTTL > 0 }

// ScoringConfig implementation
func (c *Config) GetScoringConcurrency() int { return c.ScoringConcurrency }

// Load reads configuration from environment variables.
// A .env file in the working directory is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	httpAddr := getEnv("HTTP_ADDR", "")
	if httpAddr == "" {
		httpAddr = ":" + getEnv("PORT", "3000")
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           httpAddr,
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:       mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		MaxUploadBytes:     mustInt64(getEnv("MAX_UPLOAD_BYTES", "10485760")),
		AIProvider:         strings.ToLower(strings.TrimSpace(getEnv("AI_PROVIDER", ProviderGemini))),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", DefaultGeminiModel),
		MoonshotAPIKey:     getEnv("MOONSHOT_API_KEY", ""),
		MoonshotModel:      getEnv("MOONSHOT_MODEL", DefaultMoonshotModel),
		AITimeout:          mustDuration(getEnv("AI_TIMEOUT", "30s")),
		AIRateLimitRPS:     mustFloat(getEnv("AI_RATE_LIMIT_RPS", "0")),
		AIRateLimitBurst:   int(mustInt64(getEnv("AI_RATE_LIMIT_BURST", "1"))),
		RedisURL:           getEnv("REDIS_URL", ""),
		AICacheTTL:         mustDuration(getEnv("AI_CACHE_TTL", "24h")),
		ScoringConcurrency: int(mustInt64(getEnv("SCORING_CONCURRENCY", "1"))),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AIProvider {
	case ProviderGemini, ProviderMoonshot:
	default:
		return fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderMoonshot, c.AIProvider)
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if c.ScoringConcurrency < 1 {
		return fmt.Errorf("SCORING_CONCURRENCY must be at least 1")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

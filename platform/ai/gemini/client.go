// Package gemini wraps the Google GenAI SDK as a prompt-in, text-out generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

// ErrEmptyResponse is returned when the model answers without text.
var ErrEmptyResponse = errors.New("gemini returned an empty response")

// Config for the Gemini API backend.
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature *float32
	// HTTPOptions lets tests point the SDK at a fake server.
	HTTPOptions genai.HTTPOptions
}

// Client generates text with a single Gemini model.
type Client struct {
	models  *genai.Models
	model   string
	timeout time.Duration
	config  *genai.GenerateContentConfig
}

// New creates a client for the Gemini developer API.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: cfg.HTTPOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	c := &Client{models: gc.Models, model: cfg.Model, timeout: cfg.Timeout}
	if cfg.Temperature != nil {
		c.config = &genai.GenerateContentConfig{Temperature: cfg.Temperature}
	}
	return c, nil
}

// Name returns the model identifier.
func (c *Client) Name() string {
	return c.model
}

// Generate sends prompt as a single user turn and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Package moonshot talks to Moonshot's OpenAI-compatible chat API. KimiModel
// satisfies the ADK model.LLM interface and also acts as a plain prompt-in,
// text-out generator for the lead classifier.
package moonshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	DefaultBaseURL = "https://api.moonshot.ai/v1"
	DefaultModel   = "kimi-k2-turbo-preview"
)

// Config for Kimi
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	Temperature     *float32
	DisableThinking bool // kimi-k2.5 only; the API then pins temperature to 0.6
}

// KimiModel adapts Moonshot to the ADK model.LLM interface
type KimiModel struct {
	config Config
	client *http.Client
}

var _ model.LLM = (*KimiModel)(nil)

var (
	// ErrEmptyChoices is returned when the API answers without a choice.
	ErrEmptyChoices = errors.New("kimi api error: empty choices")
	// ErrEmptyResponse is returned by Generate when the reply has no text.
	ErrEmptyResponse = errors.New("kimi returned an empty response")
)

func NewModel(cfg Config) *KimiModel {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &KimiModel{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (m *KimiModel) Name() string {
	return m.config.Model
}

// Generate sends one user prompt and returns the reply text.
func (m *KimiModel) Generate(ctx context.Context, prompt string) (string, error) {
	req := &model.LLMRequest{
		Model:    m.config.Model,
		Contents: genai.Text(prompt),
	}
	if m.config.Temperature != nil {
		req.Config = &genai.GenerateContentConfig{Temperature: m.config.Temperature}
	}

	var out strings.Builder
	for resp, err := range m.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", err
		}
		out.WriteString(collectText(resp.Content))
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", ErrEmptyResponse
	}
	return out.String(), nil
}

// GenerateContent adapts ADK requests to Kimi's chat completions endpoint.
// Streaming is not supported; a single response is always yielded.
func (m *KimiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string            `json:"model"`
	Messages    []chatMessage     `json:"messages"`
	Temperature *float64          `json:"temperature,omitempty"`
	Thinking    map[string]string `json:"thinking,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (m *KimiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	payload := chatRequest{
		Model:    m.config.Model,
		Messages: convertMessages(req.Contents),
	}
	if m.config.DisableThinking {
		payload.Thinking = map[string]string{"type": "disabled"}
	} else if req.Config != nil && req.Config.Temperature != nil {
		t := float64(*req.Config.Temperature)
		payload.Temperature = &t
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode kimi request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build kimi request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("kimi api status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode kimi response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("kimi api error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, ErrEmptyChoices
	}

	var parts []*genai.Part
	if text := result.Choices[0].Message.Content; strings.TrimSpace(text) != "" {
		parts = append(parts, genai.NewPartFromText(text))
	}
	return &model.LLMResponse{
		Content: &genai.Content{Role: genai.RoleModel, Parts: parts},
	}, nil
}

func convertMessages(contents []*genai.Content) []chatMessage {
	messages := make([]chatMessage, 0, len(contents))
	for _, content := range contents {
		if content == nil {
			continue
		}
		if text := strings.TrimSpace(collectText(content)); text != "" {
			messages = append(messages, chatMessage{Role: roleForContent(content.Role), Content: text})
		}
	}
	return messages
}

func roleForContent(role string) string {
	if role == genai.RoleModel {
		return "assistant"
	}
	return "user"
}

func collectText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

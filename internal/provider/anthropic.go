package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/covnav/backend/internal/session"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com/v1"
	anthropicDefaultModel   = "claude-3-5-sonnet-20241022"
	anthropicVersion        = "2023-06-01"
	anthropicMaxTokens      = 4096
)

// AnthropicConfig controls Anthropic client construction.
type AnthropicConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// AnthropicProvider talks to the Anthropic messages API.
type AnthropicProvider struct {
	apiKey       string
	defaultModel string
	baseURL      string
	client       *http.Client
}

func NewAnthropic(cfg AnthropicConfig) *AnthropicProvider {
	p := &AnthropicProvider{
		apiKey:       cfg.APIKey,
		defaultModel: cfg.Model,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		client:       cfg.HTTPClient,
	}
	if p.defaultModel == "" {
		p.defaultModel = anthropicDefaultModel
	}
	if p.baseURL == "" {
		p.baseURL = anthropicDefaultBaseURL
	}
	if p.client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		p.client = &http.Client{Timeout: timeout}
	}
	return p
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []wireMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *AnthropicProvider) Send(ctx context.Context, turns []session.Turn, systemPrompt, model string) (string, error) {
	if model == "" {
		model = p.defaultModel
	}

	// Anthropic takes the system directive as a top-level field; the
	// transcript carries only user and assistant turns.
	payload, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: anthropicMaxTokens,
		System:    systemPrompt,
		Messages:  toWire(turns),
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send anthropic request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", fmt.Errorf("anthropic http status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("anthropic response contained no content blocks")
	}

	var out strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}

func (p *AnthropicProvider) Name() string { return "Anthropic" }

func (p *AnthropicProvider) DefaultModel() string { return p.defaultModel }

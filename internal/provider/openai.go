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
	openAIDefaultBaseURL = "https://api.openai.com/v1"
	openAIDefaultModel   = "gpt-4o-mini"
)

// OpenAIConfig controls OpenAI client construction. BaseURL and HTTPClient
// exist for tests and proxies; zero values pick production defaults.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// OpenAIProvider talks to the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey       string
	defaultModel string
	baseURL      string
	client       *http.Client
}

func NewOpenAI(cfg OpenAIConfig) *OpenAIProvider {
	p := &OpenAIProvider{
		apiKey:       cfg.APIKey,
		defaultModel: cfg.Model,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		client:       cfg.HTTPClient,
	}
	if p.defaultModel == "" {
		p.defaultModel = openAIDefaultModel
	}
	if p.baseURL == "" {
		p.baseURL = openAIDefaultBaseURL
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

type openAIRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Send(ctx context.Context, turns []session.Turn, systemPrompt, model string) (string, error) {
	if model == "" {
		model = p.defaultModel
	}

	// OpenAI consumes the system directive as a leading system-role
	// message in the transcript itself.
	messages := make([]wireMessage, 0, len(turns)+1)
	if systemPrompt != "" {
		messages = append(messages, wireMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, toWire(turns)...)

	payload, err := json.Marshal(openAIRequest{Model: model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal openai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send openai request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", fmt.Errorf("openai http status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed openAIResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Name() string { return "OpenAI" }

func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }

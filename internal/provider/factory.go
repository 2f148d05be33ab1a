package provider

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config selects and configures the process-wide AI backend. Selection
// happens once at startup; there is no per-request provider choice.
type Config struct {
	Kind            string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
}

// New builds the provider named by cfg.Kind. Missing credentials for the
// selected backend are a configuration error; the process must not start
// serving traffic.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, errors.New("OPENAI_API_KEY is required when AI_PROVIDER=openai")
		}
		return NewOpenAI(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		}), nil
	case "anthropic":
		if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required when AI_PROVIDER=anthropic")
		}
		return NewAnthropic(AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.Timeout,
		}), nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q (expected openai|anthropic|mock)", cfg.Kind)
	}
}

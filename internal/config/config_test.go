package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("PROMPTS_BASE_DIRECTORY", "/srv/covnav")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.AIProvider != "openai" {
		t.Fatalf("AIProvider = %q, want %q", cfg.AIProvider, "openai")
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("OpenAIModel = %q, want default", cfg.OpenAIModel)
	}
	if cfg.AnthropicModel != "claude-3-5-sonnet-20241022" {
		t.Fatalf("AnthropicModel = %q, want default", cfg.AnthropicModel)
	}
	if cfg.SessionIdleTimeout != 24*time.Hour {
		t.Fatalf("SessionIdleTimeout = %v, want 24h", cfg.SessionIdleTimeout)
	}
	if cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin = true, want false by default")
	}
}

func TestLoadRequiresPromptsBaseDirectory(t *testing.T) {
	setCoreEnvEmpty(t)

	if _, err := Load(); err == nil {
		t.Fatalf("Load() without PROMPTS_BASE_DIRECTORY should fail")
	}
}

func TestLoadRejectsTinyIdleTimeout(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("PROMPTS_BASE_DIRECTORY", "/srv/covnav")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5s")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() with 5s idle timeout should fail")
	}
}

func TestLoadExplicitValues(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("PROMPTS_BASE_DIRECTORY", "/srv/covnav")
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "  key-with-spaces  ")
	t.Setenv("SESSION_IDLE_TIMEOUT", "48h")
	t.Setenv("APP_ALLOW_ANY_ORIGIN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AIProvider != "anthropic" {
		t.Fatalf("AIProvider = %q", cfg.AIProvider)
	}
	if cfg.AnthropicAPIKey != "key-with-spaces" {
		t.Fatalf("AnthropicAPIKey = %q, want trimmed", cfg.AnthropicAPIKey)
	}
	if cfg.SessionIdleTimeout != 48*time.Hour {
		t.Fatalf("SessionIdleTimeout = %v, want 48h", cfg.SessionIdleTimeout)
	}
	if !cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin = false, want true")
	}
}

func TestLoadBadDuration(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("PROMPTS_BASE_DIRECTORY", "/srv/covnav")
	t.Setenv("SESSION_IDLE_TIMEOUT", "one day")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() with unparseable duration should fail")
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"AI_PROVIDER",
		"OPENAI_API_KEY",
		"OPENAI_MODEL",
		"ANTHROPIC_API_KEY",
		"ANTHROPIC_MODEL",
		"PROVIDER_TIMEOUT",
		"PROMPTS_BASE_DIRECTORY",
		"SESSION_IDLE_TIMEOUT",
		"DATABASE_URL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

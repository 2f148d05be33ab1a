package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/covnav/backend/internal/session"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (r roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return r(req)
}

func jsonResponse(status int, v any) *http.Response {
	buf, _ := json.Marshal(v)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(buf)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func sampleTurns() []session.Turn {
	return []session.Turn{
		{Role: session.RoleUser, Content: "hello", Timestamp: time.Now().UTC()},
		{Role: session.RoleAssistant, Content: "hi there", Timestamp: time.Now().UTC()},
		{Role: session.RoleUser, Content: "what is covered?", Timestamp: time.Now().UTC()},
	}
}

func TestOpenAISendInjectsLeadingSystemMessage(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("Authorization = %q, want bearer key", got)
		}
		if !strings.HasSuffix(req.URL.Path, "/chat/completions") {
			t.Fatalf("path = %q, want chat/completions", req.URL.Path)
		}

		var payload openAIRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Model != "gpt-4o-mini" {
			t.Fatalf("model = %q, want default", payload.Model)
		}
		if len(payload.Messages) != 4 {
			t.Fatalf("message count = %d, want 4", len(payload.Messages))
		}
		if payload.Messages[0].Role != "system" || payload.Messages[0].Content != "be helpful" {
			t.Fatalf("leading message = %+v, want system directive", payload.Messages[0])
		}
		if payload.Messages[1].Content != "hello" || payload.Messages[3].Content != "what is covered?" {
			t.Fatalf("transcript order not preserved: %+v", payload.Messages)
		}

		return jsonResponse(200, map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Deductibles apply."}},
			},
		}), nil
	})

	p := NewOpenAI(OpenAIConfig{APIKey: "key", HTTPClient: &http.Client{Transport: transport}})
	got, err := p.Send(context.Background(), sampleTurns(), "be helpful", "")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got != "Deductibles apply." {
		t.Fatalf("Send() = %q", got)
	}
}

func TestOpenAISendModelOverride(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		var payload openAIRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Model != "gpt-4o" {
			t.Fatalf("model = %q, want override", payload.Model)
		}
		if len(payload.Messages) != 3 {
			t.Fatalf("message count = %d, want 3 without system prompt", len(payload.Messages))
		}
		return jsonResponse(200, map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		}), nil
	})

	p := NewOpenAI(OpenAIConfig{APIKey: "key", HTTPClient: &http.Client{Transport: transport}})
	if _, err := p.Send(context.Background(), sampleTurns(), "", "gpt-4o"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
}

func TestOpenAISendNonSuccessStatus(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(429, map[string]any{"error": "rate limited"}), nil
	})

	p := NewOpenAI(OpenAIConfig{APIKey: "key", HTTPClient: &http.Client{Transport: transport}})
	_, err := p.Send(context.Background(), sampleTurns(), "", "")
	if err == nil {
		t.Fatalf("Send() should fail on non-2xx status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("Send() error = %v, want status in message", err)
	}
}

func TestOpenAISendEmptyChoices(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, map[string]any{"choices": []any{}}), nil
	})

	p := NewOpenAI(OpenAIConfig{APIKey: "key", HTTPClient: &http.Client{Transport: transport}})
	if _, err := p.Send(context.Background(), sampleTurns(), "", ""); err == nil {
		t.Fatalf("Send() should fail when no choices are returned")
	}
}

func TestOpenAIIdentity(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "key", Model: "gpt-4.1"})
	if p.Name() != "OpenAI" {
		t.Fatalf("Name() = %q", p.Name())
	}
	if p.DefaultModel() != "gpt-4.1" {
		t.Fatalf("DefaultModel() = %q", p.DefaultModel())
	}
}

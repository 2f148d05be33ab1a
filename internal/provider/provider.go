package provider

import (
	"context"

	"github.com/covnav/backend/internal/session"
)

// Provider sends a conversation transcript to an external AI backend and
// returns the assistant reply. How the system prompt rides along is each
// backend's own business: OpenAI wants a leading system message, Anthropic
// a top-level field. Callers must not assume either shape.
type Provider interface {
	// Send submits the ordered transcript with an optional system prompt
	// and optional model override ("" means use the default). It does not
	// retry; any transport, status, or parse failure is returned as-is.
	Send(ctx context.Context, turns []session.Turn, systemPrompt, model string) (string, error)

	// Name is the stable provider label reported in chat responses.
	Name() string

	// DefaultModel is the model used when a request carries no override.
	DefaultModel() string
}

// wireMessage is the role/content pair both backends accept for
// transcript turns.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toWire(turns []session.Turn) []wireMessage {
	msgs := make([]wireMessage, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, wireMessage{Role: t.Role, Content: t.Content})
	}
	return msgs
}

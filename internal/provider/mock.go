package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/covnav/backend/internal/session"
)

// MockProvider produces deterministic local replies so the service can run
// without credentials.
type MockProvider struct{}

func NewMock() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Send(ctx context.Context, turns []session.Turn, systemPrompt, model string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	last := ""
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == session.RoleUser {
			last = strings.TrimSpace(turns[i].Content)
			break
		}
	}
	if last == "" {
		return "I am listening.", nil
	}
	return fmt.Sprintf("I heard you: %s", last), nil
}

func (p *MockProvider) Name() string { return "Mock" }

func (p *MockProvider) DefaultModel() string { return "mock" }

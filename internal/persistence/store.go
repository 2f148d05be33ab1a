package persistence

import (
	"context"
	"strings"

	"github.com/covnav/backend/internal/session"
)

// Store is the best-effort durable home for sessions. Nothing in the chat
// path depends on it: a failed Save is logged and forgotten, and the
// in-memory session remains authoritative.
type Store interface {
	Save(ctx context.Context, sess *session.Session) error
	Load(ctx context.Context, sessionID string) (*session.Session, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

// NewStore creates a postgres-backed store when configured, otherwise the
// no-op stand-in.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewNoopStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}

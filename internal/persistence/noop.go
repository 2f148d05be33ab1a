package persistence

import (
	"context"
	"log"

	"github.com/covnav/backend/internal/session"
)

// NoopStore discards every call. It keeps the orchestrator's persistence
// hook wired in deployments that run purely in memory.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	log.Printf("session persistence disabled: sessions will not survive restarts")
	return &NoopStore{}
}

func (s *NoopStore) Save(_ context.Context, _ *session.Session) error { return nil }

func (s *NoopStore) Load(_ context.Context, _ string) (*session.Session, error) {
	return nil, nil
}

func (s *NoopStore) Delete(_ context.Context, _ string) error { return nil }

func (s *NoopStore) Close() error { return nil }

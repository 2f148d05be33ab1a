package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/covnav/backend/internal/session"
)

// PostgresStore keeps a durable copy of sessions in PostgreSQL. The
// transcript is stored as a JSONB document since it is only ever read and
// written whole.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		messages JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMPTZ NOT NULL,
		last_accessed_at TIMESTAMPTZ NOT NULL
	);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, sess *session.Session) error {
	messages, err := json.Marshal(sess.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, messages, created_at, last_accessed_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET messages = EXCLUDED.messages, last_accessed_at = EXCLUDED.last_accessed_at`,
		sess.SessionID,
		messages,
		sess.CreatedAt,
		sess.LastAccessedAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, sessionID string) (*session.Session, error) {
	var (
		sess     session.Session
		messages []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, messages, created_at, last_accessed_at FROM chat_sessions WHERE id=$1`,
		sessionID,
	).Scan(&sess.SessionID, &messages, &sess.CreatedAt, &sess.LastAccessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := json.Unmarshal(messages, &sess.Messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}
	return &sess, nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM chat_sessions WHERE id=$1`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the map of session identifier to conversation state. It is
// safe for concurrent use; the map is the only guarded resource. Two
// requests racing on the same session mutate a shared *Session and the
// last Update wins, which is an accepted limitation for this service.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	idleTimeout time.Duration
}

// NewStore creates an empty store. Sessions idle longer than idleTimeout
// are evicted opportunistically on GetOrCreate.
func NewStore(idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = 24 * time.Hour
	}
	return &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
	}
}

// GetOrCreate returns the session for sessionID, minting a fresh one when
// the identifier is empty or unknown. Known sessions get their
// last-accessed time refreshed. The returned pointer is shared with the
// store, so appended turns are visible without an extra round trip;
// callers still invoke Update to refresh the access time after mutating.
func (s *Store) GetOrCreate(sessionID string) *Session {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(now)

	if sessionID != "" {
		if sess, ok := s.sessions[sessionID]; ok {
			sess.LastAccessedAt = now
			return sess
		}
	}

	sess := &Session{
		SessionID:      uuid.NewString(),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	s.sessions[sess.SessionID] = sess
	return sess
}

// Update refreshes the session's last-accessed time and upserts it under
// its identifier.
func (s *Store) Update(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.LastAccessedAt = time.Now().UTC()
	s.sessions[sess.SessionID] = sess
}

// Exists reports map membership. An empty identifier is never a member.
func (s *Store) Exists(sessionID string) bool {
	if sessionID == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// Delete removes the session if present. Deleting an unknown identifier
// is a no-op.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictExpired removes every session idle past the timeout. The linear
// scan runs on each GetOrCreate; session counts are bounded by active
// users, so a background janitor is not worth the moving parts here.
// Caller must hold s.mu.
func (s *Store) evictExpired(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.LastAccessedAt) > s.idleTimeout {
			delete(s.sessions, id)
		}
	}
}

package session

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a conversation. Transcripts only ever hold user
// and assistant turns; system directives travel out of band.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the server-held conversation state for one client. Messages
// are append-only in conversation order; the only removal is deleting the
// whole session.
type Session struct {
	SessionID      string    `json:"sessionId"`
	Messages       []Turn    `json:"messages"`
	CreatedAt      time.Time `json:"createdAt"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
}

// Append adds a turn stamped with the current time and returns the new
// message count.
func (s *Session) Append(role, content string) int {
	s.Messages = append(s.Messages, Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return len(s.Messages)
}

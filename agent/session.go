package agent

import (
	"sync"

	"github.com/google/uuid"
)

// Session is one user's conversation state: their identity and the
// short-term turn buffer. Short-term history is owned by the session,
// never shared across users.
//
// Turns on a session are serialized: a turn is not complete, and the
// next one may not start, until its generation stream is fully drained.
type Session struct {
	ID     string
	UserID string

	mu      sync.Mutex
	history *History
}

func newSession(userID string, memorySize int) *Session {
	return &Session{
		ID:      uuid.New().String(),
		UserID:  userID,
		history: NewHistory(memorySize),
	}
}

// History returns the session's short-term buffer.
func (s *Session) History() *History {
	return s.history
}

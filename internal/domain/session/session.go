package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server side state behind a signed session cookie.
// ChatID is the chat the caller selected as current, if any.
type Session struct {
	ID        uuid.UUID     `json:"session_id"`
	UserID    uuid.UUID     `json:"user_id"`
	ChatID    uuid.NullUUID `json:"chat_id"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

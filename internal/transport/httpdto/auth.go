package httpdto

import (
	"time"

	"chatboard/internal/domain/session"
)

// LoginRequest is used for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User      UserDTO   `json:"user"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionDTO struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ChatID    string    `json:"chat_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func FromSession(s session.Session) SessionDTO {
	dto := SessionDTO{
		SessionID: s.ID.String(),
		UserID:    s.UserID.String(),
		ExpiresAt: s.ExpiresAt,
	}
	if s.ChatID.Valid {
		dto.ChatID = s.ChatID.UUID.String()
	}
	return dto
}

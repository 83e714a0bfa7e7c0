package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Chat represents the chats table. Members and Messages hold references only;
// their order is join order and append order respectively.
type Chat struct {
	ID        uuid.UUID
	Chatname  string
	Members   []uuid.UUID
	Messages  []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Chat) HasMember(userID uuid.UUID) bool {
	return lo.Contains(c.Members, userID)
}

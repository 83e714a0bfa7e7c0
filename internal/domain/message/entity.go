package message

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table. ChatID and AuthorID are set once
// on insert; the repository exposes no way to change them.
type Message struct {
	ID        uuid.UUID
	Text      string
	ChatID    uuid.UUID
	AuthorID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

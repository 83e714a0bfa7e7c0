package repository

import (
	"context"

	"github.com/google/uuid"

	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/message"
	"chatboard/internal/domain/session"
	"chatboard/internal/domain/user"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_repository.go -package=mocks

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	// FindMissing returns the ids, in input order, that have no user record.
	FindMissing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type ChatRepository interface {
	Create(ctx context.Context, c *chat.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	List(ctx context.Context) ([]chat.Chat, error)

	// AddMember appends userID to the chat's members unless it is already
	// present. The check and the write are a single statement.
	AddMember(ctx context.Context, chatID, userID uuid.UUID) (chat.Chat, error)
	// AppendMessage inserts msg and pushes its id onto the messages of
	// msg.ChatID in one transaction.
	AppendMessage(ctx context.Context, msg *message.Message) (chat.Chat, error)
}

type MessageRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]message.Message, error)
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]message.Message, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s session.Session) error
	Get(ctx context.Context, id uuid.UUID) (session.Session, error)
	SetChat(ctx context.Context, id uuid.UUID, chatID uuid.UUID) (session.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

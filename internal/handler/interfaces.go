package handler

import (
	"context"

	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/message"
	"chatboard/internal/domain/session"
	"chatboard/internal/domain/user"
	"chatboard/internal/services"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_services.go -package=mocks

type ChatService interface {
	Create(ctx context.Context, in services.CreateChatInput) (chat.Chat, error)
	GetByID(ctx context.Context, chatID uuid.UUID) (chat.Chat, error)
	List(ctx context.Context) ([]chat.Chat, error)
	GetCurrent(ctx context.Context, sess *session.Session) (chat.Chat, error)
	AddMember(ctx context.Context, chatID, userID uuid.UUID) (chat.Chat, error)
	AddMessage(ctx context.Context, chatID, authorID uuid.UUID, text string) (chat.Chat, error)
	GetMessages(ctx context.Context, chatID uuid.UUID) ([]message.Message, error)
}

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (user.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
}

type AuthService interface {
	Login(ctx context.Context, in services.LoginInput) (services.LoginResult, error)
	Logout(ctx context.Context, sess *session.Session) error
	SelectChat(ctx context.Context, sess *session.Session, chatID uuid.UUID) (session.Session, error)
	CurrentUser(ctx context.Context, sess *session.Session) (user.User, error)
}

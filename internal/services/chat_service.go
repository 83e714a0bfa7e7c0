package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/message"
	"chatboard/internal/domain/session"
	"chatboard/internal/repository"
	chatboard_errors "chatboard/pkg/errors"
	"chatboard/pkg/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type ChatService struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	users    repository.UserRepository
	logger   *logger.Logger
}

func NewChatService(chats repository.ChatRepository, messages repository.MessageRepository, users repository.UserRepository, l *logger.Logger) *ChatService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ChatService{chats: chats, messages: messages, users: users, logger: l}
}

type CreateChatInput struct {
	Chatname string
	Members  []uuid.UUID
	Messages []uuid.UUID
}

func (s *ChatService) Create(ctx context.Context, in CreateChatInput) (chat.Chat, error) {
	name := strings.TrimSpace(in.Chatname)
	if name == "" {
		return chat.Chat{}, fmt.Errorf("%w: chatname is required", chatboard_errors.ErrInvalidInput)
	}

	members := lo.Uniq(in.Members)
	if len(members) > 0 {
		missing, err := s.users.FindMissing(ctx, members)
		if err != nil {
			return chat.Chat{}, err
		}
		if len(missing) > 0 {
			return chat.Chat{}, fmt.Errorf("%w: user %s", chatboard_errors.ErrNotFound, missing[0])
		}
	}

	now := time.Now().UTC()
	c := chat.Chat{
		ID:        uuid.New(),
		Chatname:  name,
		Members:   members,
		Messages:  lo.Uniq(in.Messages),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Members == nil {
		c.Members = []uuid.UUID{}
	}
	if c.Messages == nil {
		c.Messages = []uuid.UUID{}
	}

	// A message belongs to the chat it was posted in, so a fresh chat can
	// only reference messages recorded under its own id.
	if len(c.Messages) > 0 {
		found, err := s.messages.GetByIDs(ctx, c.Messages)
		if err != nil {
			return chat.Chat{}, err
		}
		byID := lo.KeyBy(found, func(m message.Message) uuid.UUID { return m.ID })
		for _, id := range c.Messages {
			m, ok := byID[id]
			if !ok {
				return chat.Chat{}, fmt.Errorf("%w: message %s", chatboard_errors.ErrNotFound, id)
			}
			if m.ChatID != c.ID {
				return chat.Chat{}, fmt.Errorf("%w: message %s belongs to another chat", chatboard_errors.ErrConflict, id)
			}
		}
	}

	if err := s.chats.Create(ctx, &c); err != nil {
		return chat.Chat{}, err
	}

	s.logger.InfoCtx(ctx, "chat created", zap.String("chat_id", c.ID.String()), zap.Int("members", len(c.Members)))
	return c, nil
}

func (s *ChatService) GetByID(ctx context.Context, chatID uuid.UUID) (chat.Chat, error) {
	c, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return chat.Chat{}, notFound(err, "chat not found")
	}
	return c, nil
}

func (s *ChatService) List(ctx context.Context) ([]chat.Chat, error) {
	return s.chats.List(ctx)
}

// GetCurrent returns the chat selected in sess.
func (s *ChatService) GetCurrent(ctx context.Context, sess *session.Session) (chat.Chat, error) {
	if sess == nil || !sess.ChatID.Valid {
		return chat.Chat{}, chatboard_errors.ErrUnauthorized
	}
	return s.GetByID(ctx, sess.ChatID.UUID)
}

func (s *ChatService) AddMember(ctx context.Context, chatID, userID uuid.UUID) (chat.Chat, error) {
	current, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return chat.Chat{}, notFound(err, "chat not found")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return chat.Chat{}, notFound(err, "user not found")
	}

	if current.HasMember(userID) {
		return chat.Chat{}, fmt.Errorf("%w: user already in chat", chatboard_errors.ErrConflict)
	}

	// The snapshot check above is a fast path; AddMember re-checks atomically.
	updated, err := s.chats.AddMember(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, chatboard_errors.ErrConflict) {
			return chat.Chat{}, fmt.Errorf("%w: user already in chat", chatboard_errors.ErrConflict)
		}
		return chat.Chat{}, notFound(err, "chat not found")
	}

	s.logger.InfoCtx(ctx, "member added",
		zap.String("chat_id", chatID.String()),
		zap.String("member_id", userID.String()),
	)
	return updated, nil
}

func (s *ChatService) AddMessage(ctx context.Context, chatID, authorID uuid.UUID, text string) (chat.Chat, error) {
	if strings.TrimSpace(text) == "" {
		return chat.Chat{}, fmt.Errorf("%w: please provide a text", chatboard_errors.ErrInvalidInput)
	}
	if authorID == uuid.Nil {
		return chat.Chat{}, chatboard_errors.ErrUnauthorized
	}

	if _, err := s.chats.GetByID(ctx, chatID); err != nil {
		return chat.Chat{}, notFound(err, "chat not found")
	}

	now := time.Now().UTC()
	msg := &message.Message{
		ID:        uuid.New(),
		Text:      text,
		ChatID:    chatID,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	updated, err := s.chats.AppendMessage(ctx, msg)
	if err != nil {
		return chat.Chat{}, err
	}

	s.logger.InfoCtx(ctx, "message added",
		zap.String("chat_id", chatID.String()),
		zap.String("message_id", msg.ID.String()),
	)
	return updated, nil
}

// GetMessages resolves the chat's message references in stored order.
// A reference without a record of this chat is reported, never skipped.
func (s *ChatService) GetMessages(ctx context.Context, chatID uuid.UUID) ([]message.Message, error) {
	c, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, notFound(err, "chat not found")
	}

	owned, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(owned, func(m message.Message) uuid.UUID { return m.ID })

	history := make([]message.Message, 0, len(c.Messages))
	for _, id := range c.Messages {
		m, ok := byID[id]
		if !ok {
			s.logger.ErrorCtx(ctx, "dangling message reference",
				zap.String("chat_id", chatID.String()),
				zap.String("message_id", id.String()),
			)
			return nil, fmt.Errorf("%w: chat %s references missing message %s", chatboard_errors.ErrDataIntegrity, chatID, id)
		}
		history = append(history, m)
	}
	return history, nil
}

package httpdto

import (
	"time"

	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/message"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CreateChatRequest is used for POST /chats
type CreateChatRequest struct {
	Chatname string   `json:"chatname" binding:"required,notblank"`
	Members  []string `json:"members" binding:"omitempty,dive,uuid"`
	Messages []string `json:"messages" binding:"omitempty,dive,uuid"`
}

// AddMessageRequest is used for POST /chats/:id/message/add
type AddMessageRequest struct {
	Text string `json:"text"`
}

type ChatDTO struct {
	ID        string    `json:"id"`
	Chatname  string    `json:"chatname"`
	Members   []string  `json:"members"`
	Messages  []string  `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatResponse struct {
	Chat ChatDTO `json:"chat"`
}

type MessageDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Chat      string    `json:"chat"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessagesResponse struct {
	Messages []MessageDTO `json:"messages"`
}

func FromChat(c chat.Chat) ChatDTO {
	return ChatDTO{
		ID:        c.ID.String(),
		Chatname:  c.Chatname,
		Members:   idStrings(c.Members),
		Messages:  idStrings(c.Messages),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromChatSlice(items []chat.Chat) []ChatDTO {
	return lo.Map(items, func(c chat.Chat, _ int) ChatDTO { return FromChat(c) })
}

func FromMessage(m message.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID.String(),
		Text:      m.Text,
		Chat:      m.ChatID.String(),
		Author:    m.AuthorID.String(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromMessageSlice(items []message.Message) []MessageDTO {
	return lo.Map(items, func(m message.Message, _ int) MessageDTO { return FromMessage(m) })
}

func idStrings(ids []uuid.UUID) []string {
	return lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() })
}

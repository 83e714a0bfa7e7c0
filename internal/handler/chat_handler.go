package handler

import (
	"net/http"
	"strings"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"
	"chatboard/internal/validation"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service ChatService
}

func NewChatHandler(service ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// List handles GET /chats.
func (h *ChatHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChatSlice(items)))
}

// Current handles GET /chats/me.
func (h *ChatHandler) Current(c *gin.Context) {
	sess := services.SessionFromContext(c.Request.Context())
	item, err := h.service.GetCurrent(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatResponse{Chat: httpdto.FromChat(item)}))
}

// GetByID handles GET /chats/:id.
func (h *ChatHandler) GetByID(c *gin.Context) {
	chatID, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.GetByID(c.Request.Context(), chatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatResponse{Chat: httpdto.FromChat(item)}))
}

// Create handles POST /chats.
func (h *ChatHandler) Create(c *gin.Context) {
	var req httpdto.CreateChatRequest
	if !bindJSON(c, &req) {
		return
	}

	members, err := validation.ParseIDs("members", req.Members)
	if err != nil {
		writeError(c, err)
		return
	}
	messages, err := validation.ParseIDs("messages", req.Messages)
	if err != nil {
		writeError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), services.CreateChatInput{
		Chatname: req.Chatname,
		Members:  members,
		Messages: messages,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.ChatResponse{Chat: httpdto.FromChat(item)}))
}

// AddMember handles POST /chats/:id/add/:user.
func (h *ChatHandler) AddMember(c *gin.Context) {
	chatID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user")
	if !ok {
		return
	}

	item, err := h.service.AddMember(c.Request.Context(), chatID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatResponse{Chat: httpdto.FromChat(item)}))
}

// AddMessage handles POST /chats/:id/message/add. The author is the session user.
func (h *ChatHandler) AddMessage(c *gin.Context) {
	chatID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req httpdto.AddMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("please provide a text", "INVALID_REQUEST"))
		return
	}

	sess := services.SessionFromContext(c.Request.Context())
	if sess == nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	item, err := h.service.AddMessage(c.Request.Context(), chatID, sess.UserID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatResponse{Chat: httpdto.FromChat(item)}))
}

// Messages handles GET /chats/:id/message.
func (h *ChatHandler) Messages(c *gin.Context) {
	chatID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.GetMessages(c.Request.Context(), chatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessagesResponse{Messages: httpdto.FromMessageSlice(items)}))
}

// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"
	"time"

	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles session HTTP endpoints.
type AuthHandler struct {
	service AuthService
	cookie  CookieConfig
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, res.Token, maxAge, "/", "", h.cookie.Secure, true)

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.LoginResponse{
		User:      httpdto.FromUser(res.User),
		SessionID: res.Session.ID.String(),
		ExpiresAt: res.ExpiresAt,
	}))
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := services.SessionFromContext(c.Request.Context())
	if err := h.service.Logout(c.Request.Context(), sess); err != nil {
		writeError(c, err)
		return
	}
	ClearCookie(c, h.cookie)
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Me returns the session's user.
func (h *AuthHandler) Me(c *gin.Context) {
	sess := services.SessionFromContext(c.Request.Context())
	u, err := h.service.CurrentUser(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.UserResponse{User: httpdto.FromUser(u)}))
}

// SelectChat sets the chat returned by GET /chats/me.
func (h *AuthHandler) SelectChat(c *gin.Context) {
	chatID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sess := services.SessionFromContext(c.Request.Context())
	updated, err := h.service.SelectChat(c.Request.Context(), sess, chatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromSession(updated)))
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c *gin.Context, cookie CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}

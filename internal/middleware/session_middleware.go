package middleware

import (
	"context"
	"net/http"

	"chatboard/internal/domain/session"
	"chatboard/internal/handler"
	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// SessionResolver turns a session cookie value into a live session.
type SessionResolver interface {
	ResolveToken(ctx context.Context, token string) (session.Session, error)
}

// SessionMiddleware attaches the caller's session to the request context.
// Requests without the cookie continue anonymously. A cookie that does not
// resolve is cleared and the request is rejected.
func SessionMiddleware(resolver SessionResolver, cookie handler.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			handler.ClearCookie(c, cookie)
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(services.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

// RequireSession rejects anonymous requests.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if services.SessionFromContext(c.Request.Context()) == nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatboard/internal/domain/session"
	"chatboard/internal/handler"
	"chatboard/internal/services"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	sessions map[string]session.Session
}

func (s stubResolver) ResolveToken(_ context.Context, token string) (session.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return session.Session{}, chatboard_errors.ErrUnauthorized
	}
	return sess, nil
}

func newSessionRouter(resolver SessionResolver, guarded bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(resolver, handler.CookieConfig{Name: "jwt"}))
	if guarded {
		r.Use(RequireSession())
	}
	r.GET("/whoami", func(c *gin.Context) {
		sess := services.SessionFromContext(c.Request.Context())
		if sess == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, sess.UserID.String())
	})
	return r
}

func request(r http.Handler, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware(t *testing.T) {
	userID := uuid.New()
	resolver := stubResolver{sessions: map[string]session.Session{
		"good": {ID: uuid.New(), UserID: userID},
	}}

	t.Run("no cookie stays anonymous", func(t *testing.T) {
		w := request(newSessionRouter(resolver, false), "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("valid cookie attaches the session", func(t *testing.T) {
		w := request(newSessionRouter(resolver, false), "good")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("invalid cookie is rejected and cleared", func(t *testing.T) {
		w := request(newSessionRouter(resolver, false), "forged")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "jwt", cookies[0].Name)
		require.Empty(t, cookies[0].Value)
	})

	t.Run("guarded route refuses anonymous callers", func(t *testing.T) {
		w := request(newSessionRouter(resolver, true), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("guarded route admits a session", func(t *testing.T) {
		w := request(newSessionRouter(resolver, true), "good")
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Len(t, w.Header().Get(RequestIDHeader), 32)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
}

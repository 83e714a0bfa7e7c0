package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"chatboard/internal/domain/session"
	"chatboard/internal/domain/user"
	"chatboard/internal/handler"
	"chatboard/internal/mocks"
	"chatboard/internal/services"
	"chatboard/internal/transport/httpdto"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testCookie = handler.CookieConfig{Name: "jwt"}

func newAuthRouter(t *testing.T, sess *session.Session) (*gin.Engine, *mocks.MockAuthService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)
	h := handler.NewAuthHandler(svc, testCookie)

	r := newRouter(sess)
	auth := r.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
	auth.POST("/chat/:id", h.SelectChat)
	return r, svc
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("should set the session cookie", func(t *testing.T) {
		r, svc := newAuthRouter(t, nil)
		u := user.User{ID: uuid.New(), Username: "alice", DisplayName: "Alice"}
		sess := session.Session{ID: uuid.New(), UserID: u.ID}
		svc.EXPECT().Login(gomock.Any(), services.LoginInput{Username: "alice", Password: "Password@123"}).
			Return(services.LoginResult{Token: "signed", ExpiresAt: time.Now().Add(time.Hour), Session: sess, User: u}, nil)

		w, env := do(t, r, http.MethodPost, "/auth/login", gin.H{"username": "alice", "password": "Password@123"})

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "jwt", cookies[0].Name)
		require.Equal(t, "signed", cookies[0].Value)
		require.True(t, cookies[0].HttpOnly)

		var body httpdto.LoginResponse
		require.NoError(t, json.Unmarshal(env.Data, &body))
		require.Equal(t, sess.ID.String(), body.SessionID)
		require.Equal(t, "alice", body.User.Username)
	})

	t.Run("should reject bad credentials", func(t *testing.T) {
		r, svc := newAuthRouter(t, nil)
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(services.LoginResult{}, chatboard_errors.ErrUnauthorized)

		w, env := do(t, r, http.MethodPost, "/auth/login", gin.H{"username": "alice", "password": "wrong-password"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "UNAUTHORIZED", env.Code)
		require.Empty(t, w.Result().Cookies())
	})

	t.Run("should require both fields", func(t *testing.T) {
		r, svc := newAuthRouter(t, nil)
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Times(0)

		w, env := do(t, r, http.MethodPost, "/auth/login", gin.H{"username": "alice"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "password", env.Errors[0].Field)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	sess := testSession()
	r, svc := newAuthRouter(t, sess)
	svc.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(nil)

	w, _ := do(t, r, http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "", cookies[0].Value)
	require.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthHandler_SelectChat(t *testing.T) {
	t.Run("should return the updated session", func(t *testing.T) {
		sess := testSession()
		r, svc := newAuthRouter(t, sess)
		chatID := uuid.New()
		updated := *sess
		updated.ChatID = uuid.NullUUID{UUID: chatID, Valid: true}
		svc.EXPECT().SelectChat(gomock.Any(), gomock.Any(), chatID).Return(updated, nil)

		w, env := do(t, r, http.MethodPost, "/auth/chat/"+chatID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body httpdto.SessionDTO
		require.NoError(t, json.Unmarshal(env.Data, &body))
		require.Equal(t, chatID.String(), body.ChatID)
	})

	t.Run("should forbid non-members", func(t *testing.T) {
		sess := testSession()
		r, svc := newAuthRouter(t, sess)
		svc.EXPECT().SelectChat(gomock.Any(), gomock.Any(), gomock.Any()).Return(session.Session{}, chatboard_errors.ErrForbidden)

		w, env := do(t, r, http.MethodPost, "/auth/chat/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "FORBIDDEN", env.Code)
	})
}

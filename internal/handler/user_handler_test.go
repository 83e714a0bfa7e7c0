package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

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

func newUserRouter(t *testing.T) (*gin.Engine, *mocks.MockUserService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	h := handler.NewUserHandler(svc)

	r := newRouter(nil)
	users := r.Group("/users")
	users.POST("", h.Register)
	users.GET("", h.List)
	users.GET("/:id", h.GetByID)
	return r, svc
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("should create the user", func(t *testing.T) {
		r, svc := newUserRouter(t)
		in := services.RegisterInput{Username: "alice", Password: "Password@123"}
		svc.EXPECT().Register(gomock.Any(), in).Return(user.User{ID: uuid.New(), Username: "alice", DisplayName: "alice"}, nil)

		w, env := do(t, r, http.MethodPost, "/users", gin.H{"username": "alice", "password": "Password@123"})

		require.Equal(t, http.StatusCreated, w.Code)
		var body httpdto.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &body))
		require.Equal(t, "alice", body.User.Username)
		require.NotContains(t, w.Body.String(), "password")
	})

	t.Run("should reject a short password", func(t *testing.T) {
		r, svc := newUserRouter(t)
		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		w, env := do(t, r, http.MethodPost, "/users", gin.H{"username": "alice", "password": "short"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "password", env.Errors[0].Field)
	})

	t.Run("should report a taken username", func(t *testing.T) {
		r, svc := newUserRouter(t)
		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(user.User{}, chatboard_errors.ErrAlreadyExists)

		w, env := do(t, r, http.MethodPost, "/users", gin.H{"username": "alice", "password": "Password@123"})

		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "ALREADY_EXISTS", env.Code)
	})
}

func TestUserHandler_GetByID(t *testing.T) {
	r, svc := newUserRouter(t)
	svc.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	w, _ := do(t, r, http.MethodGet, "/users/42", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

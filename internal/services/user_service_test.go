package services_test

import (
	"context"
	"testing"

	"chatboard/internal/domain/user"
	"chatboard/internal/mocks"
	"chatboard/internal/services"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := services.NewUserService(repo)

	t.Run("should hash the password and default the display name", func(t *testing.T) {
		req := require.New(t)
		var stored user.User
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			stored = *u
			return nil
		})

		u, err := svc.Register(context.Background(), services.RegisterInput{Username: "alice", Password: "Password@123"})

		req.NoError(err)
		req.Equal("alice", u.DisplayName)
		req.Equal(stored.ID, u.ID)
		req.NotEqual("Password@123", stored.PasswordHash)
		req.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Password@123")))
	})

	t.Run("should reject a short password", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Register(context.Background(), services.RegisterInput{Username: "alice", Password: "short"})

		require.ErrorIs(t, err, chatboard_errors.ErrInvalidInput)
	})

	t.Run("should reject a blank username", func(t *testing.T) {
		_, err := svc.Register(context.Background(), services.RegisterInput{Username: " ", Password: "Password@123"})

		require.ErrorIs(t, err, chatboard_errors.ErrInvalidInput)
	})

	t.Run("should surface a taken username", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(chatboard_errors.ErrAlreadyExists)

		_, err := svc.Register(context.Background(), services.RegisterInput{Username: "alice", Password: "Password@123"})

		require.ErrorIs(t, err, chatboard_errors.ErrAlreadyExists)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := services.NewUserService(repo)

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(user.User{}, chatboard_errors.ErrNotFound)

	_, err := svc.GetByID(context.Background(), id)

	require.ErrorIs(t, err, chatboard_errors.ErrNotFound)
	require.Contains(t, err.Error(), "user not found")
}

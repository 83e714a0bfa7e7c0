package services_test

import (
	"context"
	"testing"
	"time"

	"chatboard/config"
	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/session"
	"chatboard/internal/domain/user"
	"chatboard/internal/mocks"
	"chatboard/internal/services"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc      *services.AuthService
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	chats    *mocks.MockChatRepository
}

func newAuthFixture(t *testing.T) authFixture {
	ctrl := gomock.NewController(t)
	f := authFixture{
		users:    mocks.NewMockUserRepository(ctrl),
		sessions: mocks.NewMockSessionRepository(ctrl),
		chats:    mocks.NewMockChatRepository(ctrl),
	}
	f.svc = services.NewAuthService(f.users, f.sessions, f.chats, &config.Config{
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
	})
	return f
}

func testUser(t *testing.T, password string) user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{ID: uuid.New(), Username: "alice", DisplayName: "Alice", PasswordHash: string(hash)}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("should issue a token that resolves to the stored session", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		u := testUser(t, "Password@123")

		var stored session.Session
		f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(u, nil)
		f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s session.Session) error {
			stored = s
			return nil
		})

		res, err := f.svc.Login(context.Background(), services.LoginInput{Username: "alice", Password: "Password@123"})
		req.NoError(err)
		req.NotEmpty(res.Token)
		req.Equal(u.ID, res.User.ID)
		req.Equal(u.ID, stored.UserID)
		req.False(stored.ChatID.Valid)
		req.WithinDuration(time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

		f.sessions.EXPECT().Get(gomock.Any(), stored.ID).Return(stored, nil)

		resolved, err := f.svc.ResolveToken(context.Background(), res.Token)
		req.NoError(err)
		req.Equal(stored.ID, resolved.ID)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(testUser(t, "Password@123"), nil)
		f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Login(context.Background(), services.LoginInput{Username: "alice", Password: "nope-nope"})

		require.ErrorIs(t, err, chatboard_errors.ErrUnauthorized)
	})

	t.Run("should reject an unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(user.User{}, chatboard_errors.ErrNotFound)

		_, err := f.svc.Login(context.Background(), services.LoginInput{Username: "ghost", Password: "Password@123"})

		require.ErrorIs(t, err, chatboard_errors.ErrUnauthorized)
	})
}

func TestAuthService_ResolveToken(t *testing.T) {
	t.Run("should reject garbage", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.ResolveToken(context.Background(), "not-a-token")
		require.ErrorIs(t, err, chatboard_errors.ErrUnauthorized)
	})

	t.Run("should reject a revoked session", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		u := testUser(t, "Password@123")
		f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(u, nil)
		f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Login(context.Background(), services.LoginInput{Username: "alice", Password: "Password@123"})
		req.NoError(err)

		f.sessions.EXPECT().Get(gomock.Any(), res.Session.ID).Return(session.Session{}, chatboard_errors.ErrNotFound)

		_, err = f.svc.ResolveToken(context.Background(), res.Token)
		req.ErrorIs(err, chatboard_errors.ErrUnauthorized)
	})
}

func TestAuthService_SelectChat(t *testing.T) {
	userID := uuid.New()
	sess := &session.Session{ID: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("should store the chat for a member", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)
		chatID := uuid.New()
		f.chats.EXPECT().GetByID(gomock.Any(), chatID).Return(chat.Chat{ID: chatID, Members: []uuid.UUID{userID}}, nil)
		f.sessions.EXPECT().SetChat(gomock.Any(), sess.ID, chatID).DoAndReturn(func(_ context.Context, id, c uuid.UUID) (session.Session, error) {
			updated := *sess
			updated.ChatID = uuid.NullUUID{UUID: c, Valid: true}
			return updated, nil
		})

		updated, err := f.svc.SelectChat(context.Background(), sess, chatID)
		req.NoError(err)
		req.True(updated.ChatID.Valid)
		req.Equal(chatID, updated.ChatID.UUID)
	})

	t.Run("should refuse a non-member", func(t *testing.T) {
		f := newAuthFixture(t)
		chatID := uuid.New()
		f.chats.EXPECT().GetByID(gomock.Any(), chatID).Return(chat.Chat{ID: chatID}, nil)
		f.sessions.EXPECT().SetChat(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.SelectChat(context.Background(), sess, chatID)
		require.ErrorIs(t, err, chatboard_errors.ErrForbidden)
	})

	t.Run("should require a session", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.SelectChat(context.Background(), nil, uuid.New())
		require.ErrorIs(t, err, chatboard_errors.ErrUnauthorized)
	})
}

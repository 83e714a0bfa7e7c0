package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatboard/config"
	"chatboard/internal/domain/session"
	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	chats      repository.ChatRepository
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, chats repository.ChatRepository, cfg *config.Config) *AuthService {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		chats:      chats,
		jwtSecret:  []byte(cfg.JWTSecret),
		sessionTTL: ttl,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   session.Session
	User      user.User
}

// SessionClaims are carried by the session cookie. Subject is the user id.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: username and password are required", chatboard_errors.ErrInvalidInput)
	}

	u, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, chatboard_errors.ErrNotFound) {
			return LoginResult{}, chatboard_errors.ErrUnauthorized
		}
		return LoginResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return LoginResult{}, chatboard_errors.ErrUnauthorized
	}

	now := time.Now().UTC()
	sess := session.Session{
		ID:        uuid.New(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return LoginResult{}, err
	}

	token, err := s.newSessionToken(sess)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Session:   sess,
		User:      u,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return chatboard_errors.ErrUnauthorized
	}
	return s.sessions.Delete(ctx, sess.ID)
}

// ResolveToken turns a cookie value into the live session behind it.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (session.Session, error) {
	claims, err := s.ParseSessionToken(token)
	if err != nil {
		return session.Session{}, err
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return session.Session{}, chatboard_errors.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return session.Session{}, chatboard_errors.ErrUnauthorized
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, chatboard_errors.ErrNotFound) {
			return session.Session{}, chatboard_errors.ErrUnauthorized
		}
		return session.Session{}, err
	}
	if sess.UserID != userID || sess.Expired(time.Now()) {
		return session.Session{}, chatboard_errors.ErrUnauthorized
	}
	return sess, nil
}

// SelectChat makes chatID the current chat of sess. Only members may select a chat.
func (s *AuthService) SelectChat(ctx context.Context, sess *session.Session, chatID uuid.UUID) (session.Session, error) {
	if sess == nil {
		return session.Session{}, chatboard_errors.ErrUnauthorized
	}

	c, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return session.Session{}, notFound(err, "chat not found")
	}
	if !c.HasMember(sess.UserID) {
		return session.Session{}, fmt.Errorf("%w: not a member of this chat", chatboard_errors.ErrForbidden)
	}

	updated, err := s.sessions.SetChat(ctx, sess.ID, chatID)
	if err != nil {
		if errors.Is(err, chatboard_errors.ErrNotFound) {
			return session.Session{}, chatboard_errors.ErrUnauthorized
		}
		return session.Session{}, err
	}
	return updated, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, sess *session.Session) (user.User, error) {
	if sess == nil {
		return user.User{}, chatboard_errors.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return user.User{}, notFound(err, "user not found")
	}
	return u, nil
}

func (s *AuthService) ParseSessionToken(tokenString string) (SessionClaims, error) {
	if tokenString == "" {
		return SessionClaims{}, chatboard_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chatboard_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return SessionClaims{}, chatboard_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return SessionClaims{}, chatboard_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) newSessionToken(sess session.Session) (string, error) {
	claims := SessionClaims{
		SessionID: sess.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

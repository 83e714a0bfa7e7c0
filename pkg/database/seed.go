package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/message"
	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Usernames []string
	Password  string
	Chatname  string
	Greeting  string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Usernames: []string{"alice", "bob", "carol"},
		Password:  "Password@123",
		Chatname:  "team",
		Greeting:  "hello team",
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []user.User
	Chat     chat.Chat
	Messages []uuid.UUID
}

// Seed creates development users and one chat holding all of them with a
// single greeting from the first user. Existing usernames are reused.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	if len(cfg.Usernames) == 0 {
		return nil, fmt.Errorf("%w: no users to seed", chatboard_errors.ErrInvalidInput)
	}

	users := repository.NewUserRepository(pool)
	chats := repository.NewChatRepository(pool)

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result := &SeedResult{}
	for _, name := range cfg.Usernames {
		u, err := seedUser(ctx, users, name, string(hashed))
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", name, err)
		}
		result.Users = append(result.Users, u)
	}

	now := time.Now().UTC()
	c := chat.Chat{
		ID:        uuid.New(),
		Chatname:  cfg.Chatname,
		Members:   make([]uuid.UUID, 0, len(result.Users)),
		Messages:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, u := range result.Users {
		c.Members = append(c.Members, u.ID)
	}
	if err := chats.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("failed to seed chat: %w", err)
	}

	updated, err := chats.AppendMessage(ctx, &message.Message{
		ID:        uuid.New(),
		Text:      cfg.Greeting,
		ChatID:    c.ID,
		AuthorID:  result.Users[0].ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed message: %w", err)
	}
	result.Chat = updated
	result.Messages = updated.Messages

	log.Printf("Seeded %d users and chat %s", len(result.Users), updated.ID)
	return result, nil
}

func seedUser(ctx context.Context, users repository.UserRepository, username, passwordHash string) (user.User, error) {
	existing, err := users.GetByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, chatboard_errors.ErrNotFound) {
		return user.User{}, err
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		DisplayName:  username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatboard/internal/domain/user"
	"chatboard/internal/repository"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

type RegisterInput struct {
	Username    string
	DisplayName string
	Password    string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if err := validateRegister(in); err != nil {
		return user.User{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = strings.TrimSpace(in.Username)
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(in.Username),
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, notFound(err, "user not found")
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.repo.List(ctx)
}

func validateRegister(in RegisterInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is required", chatboard_errors.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", chatboard_errors.ErrInvalidInput, minPasswordLength)
	}
	return nil
}

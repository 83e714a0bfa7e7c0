package httpdto

import (
	"chatboard/internal/domain/user"
	"time"

	"github.com/samber/lo"
)

// RegisterRequest is used for POST /users
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,notblank,max=64"`
	DisplayName string `json:"display_name" binding:"max=128"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserResponse struct {
	User UserDTO `json:"user"`
}

func FromUser(u user.User) UserDTO {
	return UserDTO{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func FromUserSlice(items []user.User) []UserDTO {
	return lo.Map(items, func(u user.User, _ int) UserDTO { return FromUser(u) })
}

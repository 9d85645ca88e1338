package model

import (
	"time"

	"github.com/raigadbazaar/marketplace/constant"
)

// UserEntity represents the user table entity
type UserEntity struct {
	ID           uint64            `db:"id" json:"id"`
	Name         string            `db:"name" json:"name"`
	Email        string            `db:"email" json:"email"`
	Role         constant.UserRole `db:"role" json:"role"`
	Phone        string            `db:"phone" json:"phone,omitempty"`
	PasswordHash string            `db:"password_hash" json:"-"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time        `db:"updated_at" json:"updated_at,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Email string
}

// SignupRequest for account creation
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=buyer owner"`
	Phone    string `json:"phone"`
}

// LoginRequest for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both signup and login; the client stores it
// and echoes user_id on subsequent calls.
type AuthResponse struct {
	UserID uint64            `json:"user_id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Role   constant.UserRole `json:"role"`
	Phone  string            `json:"phone,omitempty"`
	Token  string            `json:"token"`
}

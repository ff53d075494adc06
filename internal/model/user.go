package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateUsername(ctx context.Context, id int64, username string) (User, error)
	Delete(ctx context.Context, id int64) error
}

// User represents a stored account.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}

// Subject is the user identity snapshot carried inside session tokens.
type Subject struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AsSubject builds the token subject for a user.
func (u User) AsSubject() Subject {
	return Subject{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

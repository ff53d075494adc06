package model

import (
	"context"
	"time"
)

// RefreshTokenStore persists refresh-token metadata used to validate
// and revoke refresh exchanges.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeBySessionID(ctx context.Context, sessionID string) error
}

// RefreshToken tracks one issued refresh token. Created at login,
// revoked on logout for the matching session.
type RefreshToken struct {
	ID        int64
	JTI       string
	UserID    int64
	SessionID string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

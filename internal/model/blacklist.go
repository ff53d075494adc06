package model

import (
	"context"
	"time"
)

// BlacklistStore persists revoked access tokens until their own expiry.
type BlacklistStore interface {
	Create(ctx context.Context, entry BlacklistedToken) error
	GetByJTI(ctx context.Context, jti string) (BlacklistedToken, error)
	GetByToken(ctx context.Context, token string) (BlacklistedToken, error)
	DeleteExpired(ctx context.Context) error
}

// BlacklistedToken records a revoked access token. A jti appears at most
// once; rows are swept once past their expiry.
type BlacklistedToken struct {
	ID        int64
	Token     string
	JTI       string
	ExpiresAt time.Time
}

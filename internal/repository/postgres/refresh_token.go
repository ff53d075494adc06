package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parleychat/parley-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db DBTX
}

func NewRefreshTokenRepository(db DBTX) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db: db,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (jti, user_id, session_id, expires_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, token.JTI, token.UserID, token.SessionID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	query := `SELECT id, jti, user_id, session_id, expires_at, created_at, revoked
			  FROM refresh_tokens WHERE jti = $1`

	var token model.RefreshToken
	err := r.db.QueryRowContext(ctx, query, jti).Scan(
		&token.ID, &token.JTI, &token.UserID, &token.SessionID,
		&token.ExpiresAt, &token.CreatedAt, &token.Revoked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

func (r *RefreshTokenRepository) RevokeBySessionID(ctx context.Context, sessionID string) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE session_id = $1 AND NOT revoked`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parleychat/parley-server/internal/model"
)

var _ model.BlacklistStore = (*BlacklistRepository)(nil)

type BlacklistRepository struct {
	db DBTX
}

func NewBlacklistRepository(db DBTX) *BlacklistRepository {
	return &BlacklistRepository{
		db: db,
	}
}

func (r *BlacklistRepository) Create(ctx context.Context, entry model.BlacklistedToken) error {
	query := `INSERT INTO blacklisted_tokens (token, jti, expires_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, entry.Token, entry.JTI, entry.ExpiresAt); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (r *BlacklistRepository) GetByJTI(ctx context.Context, jti string) (model.BlacklistedToken, error) {
	query := `SELECT id, token, jti, expires_at FROM blacklisted_tokens WHERE jti = $1`

	var entry model.BlacklistedToken
	err := r.db.QueryRowContext(ctx, query, jti).
		Scan(&entry.ID, &entry.Token, &entry.JTI, &entry.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BlacklistedToken{}, model.ErrNotFound
		}
		return model.BlacklistedToken{}, fmt.Errorf("failed to get blacklisted token: %w", err)
	}
	return entry, nil
}

func (r *BlacklistRepository) GetByToken(ctx context.Context, token string) (model.BlacklistedToken, error) {
	query := `SELECT id, token, jti, expires_at FROM blacklisted_tokens WHERE token = $1`

	var entry model.BlacklistedToken
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&entry.ID, &entry.Token, &entry.JTI, &entry.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BlacklistedToken{}, model.ErrNotFound
		}
		return model.BlacklistedToken{}, fmt.Errorf("failed to get blacklisted token: %w", err)
	}
	return entry, nil
}

// DeleteExpired removes blacklist rows past their own token expiry.
func (r *BlacklistRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM blacklisted_tokens WHERE expires_at < now()`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to delete expired blacklist entries: %w", err)
	}
	return nil
}

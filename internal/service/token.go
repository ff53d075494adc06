package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

// TokenService provides the session token lifecycle: issuing access/refresh
// pairs, verifying, exchanging refresh tokens and revoking via the blacklist.
// It composes the TokenManager with the revocation stores.
type TokenService struct {
	manager        model.TokenManager
	refreshStore   model.RefreshTokenStore
	blacklistStore model.BlacklistStore
	accessTTL      time.Duration
	refreshTTL     time.Duration
	logger         *logger.Logger
}

func NewTokenService(
	manager model.TokenManager,
	refreshStore model.RefreshTokenStore,
	blacklistStore model.BlacklistStore,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		manager:        manager,
		refreshStore:   refreshStore,
		blacklistStore: blacklistStore,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
		logger:         logger,
	}
}

// TokenPair is one login's credentials. Access and refresh share session
// identifier and jti.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IssuePair issues an access/refresh pair sharing a fresh session_id and
// jti, and persists the refresh record used to validate later exchanges.
func (s *TokenService) IssuePair(ctx context.Context, subject model.Subject) (TokenPair, error) {
	sessionID := uuid.NewString()
	jti := uuid.NewString()

	access, err := s.manager.Issue(subject, model.IssueParams{
		SessionID: sessionID,
		JTI:       jti,
		TTL:       s.accessTTL,
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.manager.Issue(subject, model.IssueParams{
		SessionID: sessionID,
		JTI:       jti,
		TTL:       s.refreshTTL,
		Refresh:   true,
	})
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	record := model.RefreshToken{
		JTI:       jti,
		UserID:    subject.UserID,
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshStore.Create(ctx, record); err != nil {
		return TokenPair{}, fmt.Errorf("persist refresh record: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify validates signature and expiry and returns the decoded claims.
func (s *TokenService) Verify(token string) (model.TokenClaims, error) {
	return s.manager.Verify(token)
}

// Exchange verifies a refresh token and, when its refresh record exists,
// is not revoked and has not expired, issues a new access token carrying
// the same subject and session_id under a fresh jti. The stored record is
// authoritative: a revoked session fails with ErrRefreshInvalid even if
// the token's own signature and expiry are fine.
func (s *TokenService) Exchange(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.manager.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	if !claims.Refresh {
		return "", model.ErrRefreshInvalid
	}

	record, err := s.refreshStore.GetByJTI(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrRefreshInvalid
		}
		return "", fmt.Errorf("load refresh record: %w", err)
	}
	if record.Revoked || time.Now().After(record.ExpiresAt) {
		return "", model.ErrRefreshInvalid
	}

	access, err := s.manager.Issue(claims.Subject, model.IssueParams{
		SessionID: claims.SessionID,
		TTL:       s.accessTTL,
	})
	if err != nil {
		return "", fmt.Errorf("issue new access token: %w", err)
	}

	return access, nil
}

// Blacklist decodes the token and persists a blacklist entry keyed by its
// jti and raw string, recording the token's own expiry for later sweeping.
// A decode failure surfaces as ErrTokenMalformed; a jti already present
// surfaces as ErrAlreadyLoggedOut.
func (s *TokenService) Blacklist(ctx context.Context, token string) (model.TokenClaims, error) {
	claims, err := s.manager.Verify(token)
	if err != nil {
		return model.TokenClaims{}, model.ErrTokenMalformed
	}

	_, err = s.blacklistStore.GetByJTI(ctx, claims.JTI)
	if err == nil {
		return model.TokenClaims{}, model.ErrAlreadyLoggedOut
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.TokenClaims{}, fmt.Errorf("check blacklist by jti: %w", err)
	}

	entry := model.BlacklistedToken{
		Token:     token,
		JTI:       claims.JTI,
		ExpiresAt: claims.ExpiresAt,
	}
	if err := s.blacklistStore.Create(ctx, entry); err != nil {
		return model.TokenClaims{}, fmt.Errorf("persist blacklist entry: %w", err)
	}

	return claims, nil
}

// IsBlacklisted reports membership by raw token string. This is a
// convenience fast-path consulted before re-verifying; the blacklist
// record itself is the enforcement point.
func (s *TokenService) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := s.blacklistStore.GetByToken(ctx, token)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("check blacklist by token: %w", err)
}

// RevokeSession marks the session's refresh record revoked, killing later
// refresh exchanges for that login.
func (s *TokenService) RevokeSession(ctx context.Context, sessionID string) error {
	if err := s.refreshStore.RevokeBySessionID(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session %s: %w", sessionID, err)
	}
	return nil
}

// SweepExpired deletes blacklist entries past their expiry. Invoked in the
// background after logout; best-effort by contract.
func (s *TokenService) SweepExpired(ctx context.Context) error {
	return s.blacklistStore.DeleteExpired(ctx)
}

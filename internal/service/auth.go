package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

const sweepTimeout = 30 * time.Second

// Auth handles account signup, login, logout and refresh exchange.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenService *TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger,
	}
}

// SignupParams is the registration input.
type SignupParams struct {
	Username string
	Email    string
	Password string
}

// Signup registers a new account with a bcrypt-hashed password.
func (a *Auth) Signup(ctx context.Context, params SignupParams) (model.User, error) {
	if err := validatePassword(params.Password); err != nil {
		return model.User{}, err
	}

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.User{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	_, err = a.userStore.GetByUsername(ctx, params.Username)
	if err == nil {
		return model.User{}, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:       params.Username,
		Email:          params.Email,
		HashedPassword: string(hashed),
		IsActive:       true,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// Login authenticates by username or email plus password and issues an
// access/refresh pair.
func (a *Auth) Login(ctx context.Context, usernameOrEmail, password string) (TokenPair, error) {
	user, err := a.userStore.GetByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return TokenPair{}, model.ErrInvalidCredentials
		}
		return TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokenService.IssuePair(ctx, user.AsSubject())
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue token pair: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return pair, nil
}

// Logout blacklists the presented access token and revokes its session's
// refresh record. A second logout with the same token surfaces as
// ErrAlreadyLoggedOut. Expired blacklist entries are swept in the
// background; sweep failures never fail the logout.
func (a *Auth) Logout(ctx context.Context, token string) error {
	blacklisted, err := a.tokenService.IsBlacklisted(ctx, token)
	if err != nil {
		return err
	}
	if blacklisted {
		return model.ErrAlreadyLoggedOut
	}

	claims, err := a.tokenService.Blacklist(ctx, token)
	if err != nil {
		return err
	}

	if claims.SessionID == "" {
		return model.ErrTokenMissingClaim
	}
	if err := a.tokenService.RevokeSession(ctx, claims.SessionID); err != nil {
		return err
	}

	go func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if err := a.tokenService.SweepExpired(sweepCtx); err != nil {
			a.logger.Error("Auth service: blacklist sweep failed", "error", err.Error())
		}
	}()

	a.logger.Info("Auth service: user logged out", "session_id", claims.SessionID)

	return nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return a.tokenService.Exchange(ctx, refreshToken)
}

// validatePassword enforces the signup password policy.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters long", model.ErrWeakPassword)
	}
	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune("!@#$%^&*()_+[]{}|;:,.<>?/~", r):
			hasSpecial = true
		}
	}
	switch {
	case !hasDigit:
		return fmt.Errorf("%w: must contain at least one digit", model.ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: must contain at least one lowercase letter", model.ErrWeakPassword)
	case !hasUpper:
		return fmt.Errorf("%w: must contain at least one uppercase letter", model.ErrWeakPassword)
	case !hasSpecial:
		return fmt.Errorf("%w: must contain at least one special character", model.ErrWeakPassword)
	}
	return nil
}

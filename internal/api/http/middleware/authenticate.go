package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

const (
	currentUserKey = "currentUser"
	rawTokenKey    = "rawToken"
	claimsKey      = "tokenClaims"
)

// TokenService verifies bearer tokens and answers blacklist membership.
type TokenService interface {
	Verify(token string) (model.TokenClaims, error)
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// Authenticate validates bearer access tokens and injects the current
// user into the request context.
type Authenticate struct {
	tokenService TokenService
	userStore    model.UserStore
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, userStore model.UserStore, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenService: tokenService,
		userStore:    userStore,
		logger:       logger,
	}
}

// BearerToken extracts the token from an Authorization header value.
// Returns empty when the scheme is not Bearer.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// Handle rejects requests without a valid, non-blacklisted access token.
// Refresh tokens are not accepted on authenticated routes.
func (m *Authenticate) Handle(c *gin.Context) {
	token := BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		abortUnauthorized(c, "missing authorization token")
		return
	}

	blacklisted, err := m.tokenService.IsBlacklisted(c.Request.Context(), token)
	if err != nil {
		m.logger.Error("Authenticate middleware: blacklist check failed", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if blacklisted {
		abortUnauthorized(c, "token revoked")
		return
	}

	claims, err := m.tokenService.Verify(token)
	if err != nil {
		abortUnauthorized(c, "invalid authorization token")
		return
	}
	if claims.Refresh {
		abortUnauthorized(c, "access token required")
		return
	}

	user, err := m.userStore.GetByID(c.Request.Context(), claims.Subject.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			abortUnauthorized(c, "unknown user")
			return
		}
		m.logger.Error("Authenticate middleware: user lookup failed", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !user.IsActive {
		abortUnauthorized(c, "inactive user")
		return
	}

	c.Set(currentUserKey, user)
	c.Set(rawTokenKey, token)
	c.Set(claimsKey, claims)
	c.Next()
}

func abortUnauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reason})
}

// CurrentUser returns the authenticated user set by Handle.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

// RawToken returns the bearer token string set by Handle.
func RawToken(c *gin.Context) string {
	return c.GetString(rawTokenKey)
}

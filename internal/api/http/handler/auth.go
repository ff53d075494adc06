package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parleychat/parley-server/internal/api/http/middleware"
	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
	"github.com/parleychat/parley-server/internal/service"
)

// Auth handles signup, login, session introspection, refresh exchange
// and logout.
type Auth struct {
	authService *service.Auth
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService *service.Auth, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup registers a new account.
func (h *Auth) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed", "username", req.Username, "error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: user registered", "user_id", user.ID, "username", user.Username)

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login authenticates by username or email and returns a token pair.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed", "username", req.Username, "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// Me returns the authenticated user.
func (h *Auth) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout blacklists the presented access token and revokes its session.
// It consumes the raw bearer credential itself rather than going through
// the auth middleware: a second logout with the same token must surface
// as 410, not as a rejected request.
func (h *Auth) Logout(c *gin.Context) {
	token := middleware.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

// AccessToken exchanges a refresh token, presented as a bearer
// credential, for a new access token. Runs outside the auth middleware.
func (h *Auth) AccessToken(c *gin.Context) {
	refreshToken := middleware.BearerToken(c.GetHeader("Authorization"))
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, accessTokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
	})
}

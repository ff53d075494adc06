package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parleychat/parley-server/internal/api/http/middleware"
	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/service"
)

// User handles user listing, profile mutation and avatars.
type User struct {
	userService *service.User
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService *service.User, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type updateUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// List returns users with pagination.
func (h *User) List(c *gin.Context) {
	skip, limit := pagination(c)

	users, err := h.userService.List(c.Request.Context(), skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one user by id.
func (h *User) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Update renames a user. Users may only rename themselves.
func (h *User) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, _ := middleware.CurrentUser(c)
	user, err := h.userService.UpdateUsername(c.Request.Context(), current.ID, id, req.Username)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Delete removes an account. Users may only delete themselves.
func (h *User) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if err := h.userService.Delete(c.Request.Context(), current.ID, id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetAvatar stores the authenticated user's avatar from the request body.
func (h *User) SetAvatar(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	if err := h.userService.SetAvatar(c.Request.Context(), current.ID, c.Request.Body); err != nil {
		h.logger.Error("User handler: avatar upload failed", "user_id", current.ID, "error", err.Error())
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "avatar updated"})
}

// GetAvatar streams a user's avatar.
func (h *User) GetAvatar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	avatar, err := h.userService.GetAvatar(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	defer avatar.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, avatar)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parleychat/parley-server/internal/model"
)

// handleError maps service errors to HTTP status codes. Unknown errors
// are never surfaced to the client.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrWeakPassword),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrUsernameTaken),
		errors.Is(err, model.ErrSelfDirectMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenMissingClaim):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrRefreshInvalid),
		errors.Is(err, model.ErrNotParticipant),
		errors.Is(err, model.ErrNotSender),
		errors.Is(err, model.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrRoomNotFound),
		errors.Is(err, model.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrAlreadyParticipant):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrAlreadyLoggedOut):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

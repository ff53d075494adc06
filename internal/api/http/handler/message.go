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

// Message handles the REST message endpoints. Sends go through the same
// service, and thus the same broadcaster, as the websocket path.
type Message struct {
	messageService *service.Message
	logger         *logger.Logger
}

// NewMessage creates a new Message handler.
func NewMessage(messageService *service.Message, logger *logger.Logger) *Message {
	return &Message{
		messageService: messageService,
		logger:         logger,
	}
}

type messageRequest struct {
	Content string `json:"content" binding:"required"`
}

type messageResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsEdited  bool      `json:"is_edited"`
	SenderID  int64     `json:"sender_id"`
	RoomID    int64     `json:"room_id"`
}

func newMessageResponse(msg model.Message) messageResponse {
	return messageResponse{
		ID:        msg.ID,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		IsEdited:  msg.IsEdited,
		SenderID:  msg.SenderID,
		RoomID:    msg.RoomID,
	}
}

// Send persists a message in the room and broadcasts it to live
// subscribers.
func (h *Message) Send(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, _ := middleware.CurrentUser(c)
	msg, err := h.messageService.Send(c.Request.Context(), roomID, current, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newMessageResponse(msg))
}

// List returns a room's messages oldest-first.
func (h *Message) List(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	skip, limit := pagination(c)
	current, _ := middleware.CurrentUser(c)

	messages, err := h.messageService.List(c.Request.Context(), roomID, current.ID, skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]messageResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, newMessageResponse(msg))
	}
	c.JSON(http.StatusOK, resp)
}

// Edit updates a message. Only the sender may edit.
func (h *Message) Edit(c *gin.Context) {
	messageID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, _ := middleware.CurrentUser(c)
	msg, err := h.messageService.Edit(c.Request.Context(), messageID, current.ID, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMessageResponse(msg))
}

// Delete removes a message. Only the sender may delete.
func (h *Message) Delete(c *gin.Context) {
	messageID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if err := h.messageService.Delete(c.Request.Context(), messageID, current.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

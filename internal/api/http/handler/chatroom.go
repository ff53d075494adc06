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

// ChatRoom handles chatroom CRUD, membership and direct messages.
type ChatRoom struct {
	roomService *service.ChatRoom
	logger      *logger.Logger
}

// NewChatRoom creates a new ChatRoom handler.
func NewChatRoom(roomService *service.ChatRoom, logger *logger.Logger) *ChatRoom {
	return &ChatRoom{
		roomService: roomService,
		logger:      logger,
	}
}

type createRoomRequest struct {
	Name      string `json:"name" binding:"required"`
	IsPrivate bool   `json:"is_private"`
}

type roomResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	IsPrivate       bool   `json:"is_private"`
	IsDirectMessage bool   `json:"is_direct_message"`
	OwnerID         int64  `json:"owner_id"`
}

func newRoomResponse(room model.ChatRoom) roomResponse {
	return roomResponse{
		ID:              room.ID,
		Name:            room.Name,
		IsPrivate:       room.IsPrivate,
		IsDirectMessage: room.IsDirectMessage,
		OwnerID:         room.OwnerID,
	}
}

type participantResponse struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	RoomID   int64     `json:"room_id"`
	JoinedAt time.Time `json:"joined_at"`
	Username string    `json:"username,omitempty"`
}

func newParticipantResponse(p model.Participant) participantResponse {
	return participantResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		RoomID:   p.RoomID,
		JoinedAt: p.JoinedAt,
		Username: p.Username,
	}
}

// Create creates a chatroom owned by the authenticated user.
func (h *ChatRoom) Create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, _ := middleware.CurrentUser(c)
	room, err := h.roomService.Create(c.Request.Context(), req.Name, req.IsPrivate, current.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRoomResponse(room))
}

// List returns chatrooms, optionally filtered by privacy.
func (h *ChatRoom) List(c *gin.Context) {
	skip, limit := pagination(c)

	var isPrivate *bool
	switch c.Query("is_private") {
	case "true":
		v := true
		isPrivate = &v
	case "false":
		v := false
		isPrivate = &v
	}

	rooms, err := h.roomService.List(c.Request.Context(), skip, limit, isPrivate)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, newRoomResponse(room))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one chatroom by id.
func (h *ChatRoom) Get(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.roomService.Get(c.Request.Context(), roomID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// Delete removes a chatroom. Only the owner may delete it.
func (h *ChatRoom) Delete(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if err := h.roomService.Delete(c.Request.Context(), current.ID, roomID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Join adds the authenticated user to a room.
func (h *ChatRoom) Join(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	current, _ := middleware.CurrentUser(c)
	participant, err := h.roomService.Join(c.Request.Context(), current.ID, roomID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newParticipantResponse(participant))
}

// Members lists room participants.
func (h *ChatRoom) Members(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	skip, limit := pagination(c)
	participants, err := h.roomService.Members(c.Request.Context(), roomID, skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, newParticipantResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Leave removes the authenticated user from a room.
func (h *ChatRoom) Leave(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if err := h.roomService.Leave(c.Request.Context(), current.ID, roomID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OpenDirectMessage returns the DM room with the receiver, creating it
// when missing.
func (h *ChatRoom) OpenDirectMessage(c *gin.Context) {
	receiverID, ok := idParam(c, "receiver_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver id"})
		return
	}

	current, _ := middleware.CurrentUser(c)
	room, existed, err := h.roomService.OpenDirectMessage(c.Request.Context(), current.ID, receiverID)
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	c.JSON(status, newRoomResponse(room))
}

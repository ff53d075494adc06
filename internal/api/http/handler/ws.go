package handler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/parleychat/parley-server/internal/api/http/middleware"
	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
	"github.com/parleychat/parley-server/internal/service"
)

const (
	// writeWait bounds a single frame write so one dead subscriber
	// cannot stall a broadcast.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before it is
	// considered dead.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Registry tracks live room subscribers.
type Registry interface {
	Connect(roomID int64, ch model.Channel)
	Disconnect(roomID int64, ch model.Channel)
}

// WS upgrades chatroom connections, registers them for broadcast and
// pumps inbound frames through the message service.
type WS struct {
	tokenService   *service.TokenService
	roomService    *service.ChatRoom
	messageService *service.Message
	registry       Registry
	logger         *logger.Logger
}

// NewWS creates a new WS handler.
func NewWS(
	tokenService *service.TokenService,
	roomService *service.ChatRoom,
	messageService *service.Message,
	registry Registry,
	logger *logger.Logger,
) *WS {
	return &WS{
		tokenService:   tokenService,
		roomService:    roomService,
		messageService: messageService,
		registry:       registry,
		logger:         logger,
	}
}

// wsChannel adapts one websocket connection to model.Channel. Writes are
// serialized: the broadcaster and the ping loop both write.
type wsChannel struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (ch *wsChannel) Send(msg model.BroadcastMessage) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	_ = ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return ch.conn.WriteJSON(msg)
}

func (ch *wsChannel) Close() error {
	return ch.conn.Close()
}

type inboundFrame struct {
	Content string `json:"content"`
}

// Serve handles GET /ws/chatrooms/:id. Authentication and membership
// failures close the connection with a policy-violation close code
// without ever registering it.
func (h *WS) Serve(c *gin.Context) {
	roomID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WS handler: upgrade failed", "error", err.Error())
		return
	}

	user, ok := h.authenticate(c, conn)
	if !ok {
		return
	}

	member, err := h.roomService.IsParticipant(c.Request.Context(), user.ID, roomID)
	if err != nil {
		h.logger.Error("WS handler: membership check failed", "error", err.Error())
		closePolicyViolation(conn, "membership check failed")
		return
	}
	if !member {
		closePolicyViolation(conn, "not a participant of this room")
		return
	}

	ch := &wsChannel{conn: conn}
	h.registry.Connect(roomID, ch)
	h.logger.Info("WS handler: connection registered", "room_id", roomID, "user_id", user.ID)

	defer func() {
		h.registry.Disconnect(roomID, ch)
		_ = ch.Close()
		h.logger.Info("WS handler: connection closed", "room_id", roomID, "user_id", user.ID)
	}()

	done := make(chan struct{})
	defer close(done)
	go h.pingLoop(ch, done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error("WS handler: read failed", "room_id", roomID, "error", err.Error())
			}
			return
		}
		if frame.Content == "" {
			continue
		}

		if _, err := h.messageService.Send(c.Request.Context(), roomID, user, frame.Content); err != nil {
			if errors.Is(err, model.ErrNotParticipant) || errors.Is(err, model.ErrRoomNotFound) {
				closePolicyViolation(conn, err.Error())
				return
			}
			h.logger.Error("WS handler: send failed", "room_id", roomID, "error", err.Error())
		}
	}
}

// authenticate verifies the bearer token on the upgraded connection. The
// failure path closes with 1008 so clients see a policy violation rather
// than a silent drop.
func (h *WS) authenticate(c *gin.Context, conn *websocket.Conn) (model.User, bool) {
	token := middleware.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		closePolicyViolation(conn, "missing authorization token")
		return model.User{}, false
	}

	blacklisted, err := h.tokenService.IsBlacklisted(c.Request.Context(), token)
	if err != nil || blacklisted {
		closePolicyViolation(conn, "token revoked")
		return model.User{}, false
	}

	claims, err := h.tokenService.Verify(token)
	if err != nil || claims.Refresh || claims.Subject.UserID == 0 {
		closePolicyViolation(conn, "invalid authorization token")
		return model.User{}, false
	}

	return model.User{
		ID:       claims.Subject.UserID,
		Username: claims.Subject.Username,
		Email:    claims.Subject.Email,
	}, true
}

func (h *WS) pingLoop(ch *wsChannel, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := ch.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func closePolicyViolation(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), deadline)
	_ = conn.Close()
}

package model

import (
	"context"
	"time"
)

// ChatRoomStore defines persistence operations for chatrooms and membership.
type ChatRoomStore interface {
	Create(ctx context.Context, room ChatRoom) (ChatRoom, error)
	GetByID(ctx context.Context, id int64) (ChatRoom, error)
	List(ctx context.Context, skip, limit int, isPrivate *bool) ([]ChatRoom, error)
	Delete(ctx context.Context, id int64) error

	AddParticipant(ctx context.Context, userID, roomID int64) (Participant, error)
	GetParticipant(ctx context.Context, userID, roomID int64) (Participant, error)
	ListParticipants(ctx context.Context, roomID int64, skip, limit int) ([]Participant, error)
	RemoveParticipant(ctx context.Context, userID, roomID int64) error

	// GetDirectMessage returns the DM room shared by exactly the two users.
	GetDirectMessage(ctx context.Context, userID, otherID int64) (ChatRoom, error)
	// CreateDirectMessage creates a DM room with both users as participants.
	CreateDirectMessage(ctx context.Context, room ChatRoom, userID, otherID int64) (ChatRoom, error)
}

// ChatRoom is a group or direct-message channel scoping messages and broadcast.
type ChatRoom struct {
	ID              int64
	Name            string
	IsPrivate       bool
	IsDirectMessage bool
	OwnerID         int64
}

// Participant is a user's membership in a chatroom.
type Participant struct {
	ID       int64
	UserID   int64
	RoomID   int64
	JoinedAt time.Time
	Username string
	RoomName string
}

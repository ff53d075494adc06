package model

import (
	"context"
	"time"
)

// MessageStore defines persistence operations for chat messages.
type MessageStore interface {
	Create(ctx context.Context, roomID, senderID int64, content string) (Message, error)
	GetByID(ctx context.Context, id int64) (Message, error)
	ListByRoom(ctx context.Context, roomID int64, skip, limit int) ([]Message, error)
	UpdateContent(ctx context.Context, id int64, content string) (Message, error)
	Delete(ctx context.Context, id int64) error
}

// Message is a persisted chat message.
type Message struct {
	ID        int64
	Content   string
	Timestamp time.Time
	IsEdited  bool
	SenderID  int64
	RoomID    int64
}

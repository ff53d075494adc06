package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

// Message handles message persistence and live fan-out. The REST send
// path and the websocket session handler both go through Send, so the
// broadcaster instance is shared between them.
type Message struct {
	messageStore model.MessageStore
	roomStore    model.ChatRoomStore
	broadcaster  model.Broadcaster
	logger       *logger.Logger
}

func NewMessage(
	messageStore model.MessageStore,
	roomStore model.ChatRoomStore,
	broadcaster model.Broadcaster,
	logger *logger.Logger,
) *Message {
	return &Message{
		messageStore: messageStore,
		roomStore:    roomStore,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

// Send persists a message from sender in the room, then broadcasts
// {sender, content, timestamp} to every live subscriber of the room. The
// write succeeds before any broadcast happens.
func (s *Message) Send(ctx context.Context, roomID int64, sender model.User, content string) (model.Message, error) {
	if err := s.requireParticipant(ctx, sender.ID, roomID); err != nil {
		return model.Message{}, err
	}

	msg, err := s.messageStore.Create(ctx, roomID, sender.ID, content)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	s.broadcaster.Broadcast(roomID, model.BroadcastMessage{
		Sender:    sender.Username,
		Content:   msg.Content,
		Timestamp: msg.Timestamp.Format(time.RFC3339),
	})

	return msg, nil
}

// List returns the room's messages oldest-first with pagination.
func (s *Message) List(ctx context.Context, roomID, userID int64, skip, limit int) ([]model.Message, error) {
	if err := s.requireParticipant(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.messageStore.ListByRoom(ctx, roomID, skip, limit)
}

// Edit updates a message's content. Only the sender may edit.
func (s *Message) Edit(ctx context.Context, messageID, userID int64, content string) (model.Message, error) {
	msg, err := s.get(ctx, messageID)
	if err != nil {
		return model.Message{}, err
	}
	if msg.SenderID != userID {
		return model.Message{}, model.ErrNotSender
	}
	return s.messageStore.UpdateContent(ctx, messageID, content)
}

// Delete removes a message. Only the sender may delete.
func (s *Message) Delete(ctx context.Context, messageID, userID int64) error {
	msg, err := s.get(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != userID {
		return model.ErrNotSender
	}
	return s.messageStore.Delete(ctx, messageID)
}

func (s *Message) get(ctx context.Context, messageID int64) (model.Message, error) {
	msg, err := s.messageStore.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Message{}, model.ErrMessageNotFound
		}
		return model.Message{}, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

func (s *Message) requireParticipant(ctx context.Context, userID, roomID int64) error {
	if _, err := s.roomStore.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrRoomNotFound
		}
		return fmt.Errorf("failed to get chatroom: %w", err)
	}

	_, err := s.roomStore.GetParticipant(ctx, userID, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotParticipant
		}
		return fmt.Errorf("failed to check participant: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

// ChatRoom handles chatroom CRUD, membership and direct messages.
type ChatRoom struct {
	roomStore model.ChatRoomStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewChatRoom(roomStore model.ChatRoomStore, userStore model.UserStore, logger *logger.Logger) *ChatRoom {
	return &ChatRoom{
		roomStore: roomStore,
		userStore: userStore,
		logger:    logger,
	}
}

// Create creates a chatroom owned by ownerID and adds the owner as its
// first participant.
func (s *ChatRoom) Create(ctx context.Context, name string, isPrivate bool, ownerID int64) (model.ChatRoom, error) {
	room, err := s.roomStore.Create(ctx, model.ChatRoom{
		Name:      name,
		IsPrivate: isPrivate,
		OwnerID:   ownerID,
	})
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to create chatroom: %w", err)
	}

	s.logger.Info("ChatRoom service: room created",
		"room_id", room.ID,
		"owner_id", ownerID)

	return room, nil
}

// List returns chatrooms with pagination and an optional privacy filter.
func (s *ChatRoom) List(ctx context.Context, skip, limit int, isPrivate *bool) ([]model.ChatRoom, error) {
	return s.roomStore.List(ctx, skip, limit, isPrivate)
}

// Get returns one chatroom by id.
func (s *ChatRoom) Get(ctx context.Context, roomID int64) (model.ChatRoom, error) {
	room, err := s.roomStore.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ChatRoom{}, model.ErrRoomNotFound
		}
		return model.ChatRoom{}, fmt.Errorf("failed to get chatroom: %w", err)
	}
	return room, nil
}

// Join adds userID to the room. Joining twice is rejected.
func (s *ChatRoom) Join(ctx context.Context, userID, roomID int64) (model.Participant, error) {
	if _, err := s.Get(ctx, roomID); err != nil {
		return model.Participant{}, err
	}

	_, err := s.roomStore.GetParticipant(ctx, userID, roomID)
	if err == nil {
		return model.Participant{}, model.ErrAlreadyParticipant
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Participant{}, fmt.Errorf("failed to check participant: %w", err)
	}

	participant, err := s.roomStore.AddParticipant(ctx, userID, roomID)
	if err != nil {
		return model.Participant{}, fmt.Errorf("failed to add participant: %w", err)
	}
	return participant, nil
}

// IsParticipant reports whether userID belongs to the room.
func (s *ChatRoom) IsParticipant(ctx context.Context, userID, roomID int64) (bool, error) {
	_, err := s.roomStore.GetParticipant(ctx, userID, roomID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check participant: %w", err)
}

// Members lists room participants with pagination.
func (s *ChatRoom) Members(ctx context.Context, roomID int64, skip, limit int) ([]model.Participant, error) {
	if _, err := s.Get(ctx, roomID); err != nil {
		return nil, err
	}
	return s.roomStore.ListParticipants(ctx, roomID, skip, limit)
}

// Leave removes userID from the room.
func (s *ChatRoom) Leave(ctx context.Context, userID, roomID int64) error {
	if _, err := s.Get(ctx, roomID); err != nil {
		return err
	}

	_, err := s.roomStore.GetParticipant(ctx, userID, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotParticipant
		}
		return fmt.Errorf("failed to check participant: %w", err)
	}

	return s.roomStore.RemoveParticipant(ctx, userID, roomID)
}

// Delete removes the room. Only the owner may delete it.
func (s *ChatRoom) Delete(ctx context.Context, userID, roomID int64) error {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if room.OwnerID != userID {
		return model.ErrNotOwner
	}
	return s.roomStore.Delete(ctx, roomID)
}

// OpenDirectMessage returns the DM room shared by the two users, creating
// it (with both as participants) when it does not exist yet. The second
// return value reports whether the room already existed.
func (s *ChatRoom) OpenDirectMessage(ctx context.Context, userID, receiverID int64) (model.ChatRoom, bool, error) {
	if userID == receiverID {
		return model.ChatRoom{}, false, model.ErrSelfDirectMessage
	}

	if _, err := s.userStore.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ChatRoom{}, false, model.ErrUserNotFound
		}
		return model.ChatRoom{}, false, fmt.Errorf("failed to get receiver: %w", err)
	}

	existing, err := s.roomStore.GetDirectMessage(ctx, userID, receiverID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.ChatRoom{}, false, fmt.Errorf("failed to check existing dm: %w", err)
	}

	room, err := s.roomStore.CreateDirectMessage(ctx, model.ChatRoom{
		Name:            fmt.Sprintf("DM-%d-%d", userID, receiverID),
		IsPrivate:       true,
		IsDirectMessage: true,
		OwnerID:         userID,
	}, userID, receiverID)
	if err != nil {
		return model.ChatRoom{}, false, fmt.Errorf("failed to create dm: %w", err)
	}

	return room, false, nil
}

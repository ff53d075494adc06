package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
)

// User handles user profile operations and avatar storage.
type User struct {
	userStore model.UserStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, storage model.Storage, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

// List returns users with pagination.
func (s *User) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	return s.userStore.List(ctx, skip, limit)
}

// Get returns one user by id.
func (s *User) Get(ctx context.Context, id int64) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUsername renames a user. Users may only rename themselves.
func (s *User) UpdateUsername(ctx context.Context, currentUserID, targetID int64, username string) (model.User, error) {
	if currentUserID != targetID {
		return model.User{}, model.ErrNotOwner
	}
	if _, err := s.Get(ctx, targetID); err != nil {
		return model.User{}, err
	}

	_, err := s.userStore.GetByUsername(ctx, username)
	if err == nil {
		return model.User{}, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}

	return s.userStore.UpdateUsername(ctx, targetID, username)
}

// Delete removes an account. Users may only delete themselves.
func (s *User) Delete(ctx context.Context, currentUserID, targetID int64) error {
	if currentUserID != targetID {
		return model.ErrNotOwner
	}
	if _, err := s.Get(ctx, targetID); err != nil {
		return err
	}
	return s.userStore.Delete(ctx, targetID)
}

// SetAvatar stores the user's avatar in object storage.
func (s *User) SetAvatar(ctx context.Context, userID int64, reader io.Reader) error {
	if err := s.storage.Upload(ctx, avatarKey(userID), reader); err != nil {
		return fmt.Errorf("failed to upload avatar: %w", err)
	}
	s.logger.Info("User service: avatar updated", "user_id", userID)
	return nil
}

// GetAvatar streams the user's avatar from object storage.
func (s *User) GetAvatar(ctx context.Context, userID int64) (io.ReadCloser, error) {
	exists, err := s.storage.Exists(ctx, avatarKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to stat avatar: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}
	return s.storage.Download(ctx, avatarKey(userID))
}

func avatarKey(userID int64) string {
	return fmt.Sprintf("avatars/%d", userID)
}

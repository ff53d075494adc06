package model

import "errors"

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid login details")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")

	ErrUserNotFound    = errors.New("user not found")
	ErrRoomNotFound    = errors.New("chatroom does not exist")
	ErrMessageNotFound = errors.New("message does not exist")

	ErrNotParticipant     = errors.New("user is not a participant of the chatroom")
	ErrAlreadyParticipant = errors.New("user is already a participant of the chatroom")
	ErrNotSender          = errors.New("only the sender may modify the message")
	ErrNotOwner           = errors.New("only the owner may delete the chatroom")
	ErrSelfDirectMessage  = errors.New("cannot open a direct message with yourself")
)

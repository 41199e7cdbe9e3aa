package service

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotParticipant = errors.New("caller is not a participant of this room")
	ErrNotAdmin       = errors.New("caller is not a platform admin")
	ErrCodeExhausted  = errors.New("could not allocate a unique access code")
)

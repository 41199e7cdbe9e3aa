package service

import (
	"context"

	"github.com/caffeinepub/cybermeet/internal/domain"
)

// RoomService owns rooms, access codes, and membership.
type RoomService interface {
	CreateRoom(ctx context.Context, callerID string, req *domain.CreateRoomRequest) (*domain.CreateRoomResponse, error)
	JoinRoom(ctx context.Context, callerID string, code int64) error
	LeaveRoom(ctx context.Context, callerID string, roomID int64) error
	GetMyRooms(ctx context.Context, callerID string) ([]domain.RoomResponse, error)
	GetRoomParticipants(ctx context.Context, callerID string, roomID int64) ([]domain.ParticipantProfile, error)
}

// MessageService owns the per-room append-only message log.
type MessageService interface {
	SendMessage(ctx context.Context, callerID string, roomID int64, content string) error
	GetMessages(ctx context.Context, callerID string, roomID int64) ([]domain.Message, error)
}

// ProfileService owns public display profiles.
type ProfileService interface {
	// GetProfile returns (nil, nil) when the target never saved a profile.
	GetProfile(ctx context.Context, callerID string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, callerID string, profile *domain.Profile) error
}

// AccessService owns platform-level operator roles.
type AccessService interface {
	GetCallerRole(ctx context.Context, callerID string) (domain.OperatorRole, error)
	IsAdmin(ctx context.Context, callerID string) (bool, error)
	AssignRole(ctx context.Context, callerID, targetID string, role domain.OperatorRole) error
}

// NoteService owns per-(room, caller) private notes.
type NoteService interface {
	GetNote(ctx context.Context, callerID string, roomID int64) (string, error)
	SaveNote(ctx context.Context, callerID string, roomID int64, note string) error
}

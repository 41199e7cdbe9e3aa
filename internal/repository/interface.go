package repository

import (
	"context"
	"errors"

	"github.com/caffeinepub/cybermeet/internal/domain"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrCodeTaken       = errors.New("access code already in use")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRoleNotAssigned = errors.New("operator role not assigned")
)

// RoomRepository defines the interface for room and membership persistence.
type RoomRepository interface {
	// Create persists a new room with the caller-supplied access code and
	// seeds the participant set with the creator. Returns ErrCodeTaken if
	// another room already holds the code; the caller resamples and retries.
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByCode(ctx context.Context, code int64) (*domain.Room, error)
	// AddParticipant is idempotent: re-adding an existing member is a no-op.
	AddParticipant(ctx context.Context, roomID int64, callerID string) error
	// RemoveParticipant is a no-op if the caller was never a member.
	RemoveParticipant(ctx context.Context, roomID int64, callerID string) error
	IsParticipant(ctx context.Context, roomID int64, callerID string) (bool, error)
	GetParticipants(ctx context.Context, roomID int64) ([]string, error)
	GetRoomsByParticipant(ctx context.Context, callerID string) ([]domain.Room, error)
}

// MessageRepository defines the interface for the append-only message log.
type MessageRepository interface {
	Append(ctx context.Context, msg *domain.Message) error
	// ListByRoom returns the full log in append order, oldest first.
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Message, error)
	Close() error
}

// ProfileRepository defines the interface for profile persistence.
type ProfileRepository interface {
	Get(ctx context.Context, callerID string) (*domain.Profile, error)
	// GetMany returns the profiles that exist for the given callers; callers
	// without a saved profile are simply absent from the result.
	GetMany(ctx context.Context, callerIDs []string) (map[string]domain.Profile, error)
	Save(ctx context.Context, callerID string, profile *domain.Profile) error
}

// OperatorRoleRepository defines the interface for platform role persistence.
type OperatorRoleRepository interface {
	Get(ctx context.Context, callerID string) (domain.OperatorRole, error)
	Assign(ctx context.Context, callerID string, role domain.OperatorRole) error
}

// NoteRepository defines the interface for private note persistence.
type NoteRepository interface {
	// Get returns the empty string if the caller never saved a note.
	Get(ctx context.Context, roomID int64, callerID string) (string, error)
	Save(ctx context.Context, roomID int64, callerID string, body string) error
}

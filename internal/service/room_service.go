package service

import (
	"context"
	"errors"
	"math/rand"
	"slices"

	"github.com/caffeinepub/cybermeet/internal/audit"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// maxCodeAttempts bounds code resampling. The code space holds ten million
// values; hitting this limit means the deployment has outgrown 7-digit
// codes, which is worth a hard error rather than a hang.
const maxCodeAttempts = 64

// roomServiceImpl implements RoomService.
type roomServiceImpl struct {
	repo     repository.RoomRepository
	profiles repository.ProfileRepository
	producer events.Producer
}

// NewRoomService creates a new room service.
func NewRoomService(repo repository.RoomRepository, profiles repository.ProfileRepository, producer events.Producer) RoomService {
	return &roomServiceImpl{
		repo:     repo,
		profiles: profiles,
		producer: producer,
	}
}

// CreateRoom allocates a fresh room with a unique access code. The unique
// index on code arbitrates concurrent creates; losers resample and retry.
func (s *roomServiceImpl) CreateRoom(ctx context.Context, callerID string, req *domain.CreateRoomRequest) (*domain.CreateRoomResponse, error) {
	l := log.Ctx(ctx)

	room := &domain.Room{
		Title:       req.Title,
		Description: req.Description,
		Creator:     callerID,
	}

	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room.Code = rand.Int63n(domain.CodeSpace)
		err = s.repo.Create(ctx, room)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrCodeTaken) {
			l.Error().Err(err).Msg("failed to create room")
			return nil, err
		}
	}
	if err != nil {
		l.Error().Int("attempts", maxCodeAttempts).Msg("access code space exhausted")
		return nil, ErrCodeExhausted
	}

	audit.LogWithRoom(ctx, audit.ActionCreateRoom, callerID, room.ID, "room created")
	publish(ctx, s.producer, events.TypeRoomCreated, room.ID, callerID, room.ToResponse())

	return &domain.CreateRoomResponse{
		ID:          room.ID,
		Code:        room.Code,
		CodeDisplay: domain.FormatCode(room.Code),
	}, nil
}

// JoinRoom adds the caller to the room behind the given access code.
// Re-joining is a no-op, not an error.
func (s *roomServiceImpl) JoinRoom(ctx context.Context, callerID string, code int64) error {
	room, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	if err := s.repo.AddParticipant(ctx, room.ID, callerID); err != nil {
		return err
	}

	audit.LogWithRoom(ctx, audit.ActionJoinRoom, callerID, room.ID, "caller joined room")
	publish(ctx, s.producer, events.TypeRoomJoined, room.ID, callerID, nil)
	return nil
}

// LeaveRoom removes the caller from the room's participant set. Leaving a
// room the caller never joined is a no-op; the room itself persists even
// when the last participant leaves.
func (s *roomServiceImpl) LeaveRoom(ctx context.Context, callerID string, roomID int64) error {
	if _, err := s.repo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	if err := s.repo.RemoveParticipant(ctx, roomID, callerID); err != nil {
		return err
	}

	audit.LogWithRoom(ctx, audit.ActionLeaveRoom, callerID, roomID, "caller left room")
	publish(ctx, s.producer, events.TypeRoomLeft, roomID, callerID, nil)
	return nil
}

// GetMyRooms returns every room the caller currently belongs to.
func (s *roomServiceImpl) GetMyRooms(ctx context.Context, callerID string) ([]domain.RoomResponse, error) {
	rooms, err := s.repo.GetRoomsByParticipant(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.RoomResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = room.ToResponse()
	}
	return responses, nil
}

// GetRoomParticipants returns the room's members paired with their saved
// profiles. Members who never saved a profile are omitted.
func (s *roomServiceImpl) GetRoomParticipants(ctx context.Context, callerID string, roomID int64) ([]domain.ParticipantProfile, error) {
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if !slices.Contains(room.Participants, callerID) {
		return nil, ErrNotParticipant
	}

	profiles, err := s.profiles.GetMany(ctx, room.Participants)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ParticipantProfile, 0, len(room.Participants))
	for _, participant := range room.Participants {
		profile, ok := profiles[participant]
		if !ok {
			continue
		}
		result = append(result, domain.ParticipantProfile{
			CallerID: participant,
			Profile:  profile,
		})
	}
	return result, nil
}

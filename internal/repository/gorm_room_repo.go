package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// GormRoomRepository implements RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GORM-based room repository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// Create persists a new room and its creator membership in one transaction.
func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	l := log.Ctx(ctx)

	model := &domain.RoomModel{
		Title:       room.Title,
		Description: room.Description,
		Creator:     room.Creator,
		Code:        room.Code,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return tx.Create(&domain.ParticipantModel{
			RoomID:   model.ID,
			CallerID: room.Creator,
			JoinedAt: time.Now(),
		}).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return ErrCodeTaken
		}
		l.Error().Err(err).Msg("failed to create room in db")
		return err
	}

	room.ID = model.ID
	room.CreatedAt = model.CreatedAt
	room.Participants = []string{room.Creator}
	l.Debug().Int64(log.FieldRoomID, room.ID).Msg("room created in db")
	return nil
}

// GetByID retrieves a room by id, with its participant set attached.
func (r *GormRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var model domain.RoomModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, result.Error
	}

	room := model.ToDomain()
	participants, err := r.GetParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Participants = participants
	return room, nil
}

// GetByCode retrieves a room by its access code.
func (r *GormRoomRepository) GetByCode(ctx context.Context, code int64) (*domain.Room, error) {
	var model domain.RoomModel
	result := r.db.WithContext(ctx).First(&model, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, result.Error
	}

	room := model.ToDomain()
	participants, err := r.GetParticipants(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	room.Participants = participants
	return room, nil
}

// AddParticipant adds the caller to the room's participant set. The insert
// targets the composite primary key, so re-joining is a clean no-op.
func (r *GormRoomRepository) AddParticipant(ctx context.Context, roomID int64, callerID string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.ParticipantModel{
			RoomID:   roomID,
			CallerID: callerID,
			JoinedAt: time.Now(),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return nil
		}
		l.Error().Err(result.Error).Int64(log.FieldRoomID, roomID).Msg("failed to add participant")
		return result.Error
	}
	return nil
}

// RemoveParticipant removes the caller from the room's participant set.
func (r *GormRoomRepository) RemoveParticipant(ctx context.Context, roomID int64, callerID string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).
		Where("room_id = ? AND caller_id = ?", roomID, callerID).
		Delete(&domain.ParticipantModel{})
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldRoomID, roomID).Msg("failed to remove participant")
		return result.Error
	}
	return nil
}

// IsParticipant reports whether the caller is a member of the room.
func (r *GormRoomRepository) IsParticipant(ctx context.Context, roomID int64, callerID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&domain.ParticipantModel{}).
		Where("room_id = ? AND caller_id = ?", roomID, callerID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// GetParticipants returns the room's participant set in join order.
func (r *GormRoomRepository) GetParticipants(ctx context.Context, roomID int64) ([]string, error) {
	var models []domain.ParticipantModel
	result := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at ASC, caller_id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	participants := make([]string, len(models))
	for i, m := range models {
		participants[i] = m.CallerID
	}
	return participants, nil
}

// GetRoomsByParticipant returns every room the caller belongs to, oldest
// room first, each with its full participant set attached.
func (r *GormRoomRepository) GetRoomsByParticipant(ctx context.Context, callerID string) ([]domain.Room, error) {
	l := log.Ctx(ctx)

	var models []domain.RoomModel
	result := r.db.WithContext(ctx).Model(&domain.RoomModel{}).
		Joins("JOIN room_participants ON room_participants.room_id = rooms.id").
		Where("room_participants.caller_id = ?", callerID).
		Order("rooms.id ASC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldCallerID, callerID).Msg("failed to get rooms for caller")
		return nil, result.Error
	}

	rooms := make([]domain.Room, len(models))
	for i, model := range models {
		room := model.ToDomain()
		participants, err := r.GetParticipants(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		room.Participants = participants
		rooms[i] = *room
	}
	return rooms, nil
}

// isDuplicateKey recognises unique constraint violations across the
// supported drivers; GORM's translated error covers postgres and sqlite,
// the string checks cover mysql and untranslated paths.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "Duplicate entry")
}

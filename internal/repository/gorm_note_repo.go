package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// GormNoteRepository implements NoteRepository using GORM.
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GORM-based note repository.
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// Get returns the caller's note for a room, or "" if none was ever saved.
func (r *GormNoteRepository) Get(ctx context.Context, roomID int64, callerID string) (string, error) {
	var model domain.NoteModel
	result := r.db.WithContext(ctx).
		First(&model, "room_id = ? AND caller_id = ?", roomID, callerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return model.Body, nil
}

// Save overwrites the caller's note for a room.
func (r *GormNoteRepository) Save(ctx context.Context, roomID int64, callerID string, body string) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "caller_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&domain.NoteModel{RoomID: roomID, CallerID: callerID, Body: body})
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldRoomID, roomID).Msg("failed to save note")
		return result.Error
	}
	return nil
}

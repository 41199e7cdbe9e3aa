package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Append persists a message; the database sequence fixes its position in
// the room's log.
func (r *GormMessageRepository) Append(ctx context.Context, msg *domain.Message) error {
	l := log.Ctx(ctx)

	model := domain.MessageToModel(msg)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldRoomID, msg.RoomID).Msg("failed to append message")
		return result.Error
	}

	msg.Seq = model.Seq
	return nil
}

// ListByRoom returns the room's full log in append order, oldest first.
func (r *GormMessageRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Message, error) {
	l := log.Ctx(ctx)

	var models []domain.MessageModel
	result := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("seq ASC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldRoomID, roomID).Msg("failed to list messages")
		return nil, result.Error
	}

	messages := make([]domain.Message, len(models))
	for i, model := range models {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// Close is a no-op; the shared GORM connection is owned by the caller.
func (r *GormMessageRepository) Close() error {
	return nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// GormOperatorRoleRepository implements OperatorRoleRepository using GORM.
type GormOperatorRoleRepository struct {
	db *gorm.DB
}

// NewGormOperatorRoleRepository creates a new GORM-based role repository.
func NewGormOperatorRoleRepository(db *gorm.DB) *GormOperatorRoleRepository {
	return &GormOperatorRoleRepository{db: db}
}

// Get retrieves the stored platform role for a caller.
func (r *GormOperatorRoleRepository) Get(ctx context.Context, callerID string) (domain.OperatorRole, error) {
	var model domain.OperatorRoleModel
	result := r.db.WithContext(ctx).First(&model, "caller_id = ?", callerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrRoleNotAssigned
		}
		return "", result.Error
	}
	return domain.OperatorRole(model.Role), nil
}

// Assign stores the platform role for a caller, replacing any prior value.
func (r *GormOperatorRoleRepository) Assign(ctx context.Context, callerID string, role domain.OperatorRole) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "caller_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&domain.OperatorRoleModel{CallerID: callerID, Role: string(role)})
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldTargetID, callerID).Msg("failed to assign operator role")
		return result.Error
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM-based profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Get retrieves a profile by caller id.
func (r *GormProfileRepository) Get(ctx context.Context, callerID string) (*domain.Profile, error) {
	var model domain.ProfileModel
	result := r.db.WithContext(ctx).First(&model, "caller_id = ?", callerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetMany retrieves the profiles that exist for the given callers.
func (r *GormProfileRepository) GetMany(ctx context.Context, callerIDs []string) (map[string]domain.Profile, error) {
	if len(callerIDs) == 0 {
		return map[string]domain.Profile{}, nil
	}

	var models []domain.ProfileModel
	result := r.db.WithContext(ctx).Where("caller_id IN ?", callerIDs).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	profiles := make(map[string]domain.Profile, len(models))
	for _, m := range models {
		profiles[m.CallerID] = *m.ToDomain()
	}
	return profiles, nil
}

// Save creates or fully replaces the caller's profile.
func (r *GormProfileRepository) Save(ctx context.Context, callerID string, profile *domain.Profile) error {
	l := log.Ctx(ctx)

	model := domain.ProfileToModel(callerID, profile)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "caller_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "role", "updated_at"}),
		}).
		Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldCallerID, callerID).Msg("failed to save profile")
		return result.Error
	}
	return nil
}

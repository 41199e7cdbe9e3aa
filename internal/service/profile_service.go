package service

import (
	"context"
	"errors"

	"github.com/caffeinepub/cybermeet/internal/audit"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// profileServiceImpl implements ProfileService.
type profileServiceImpl struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileServiceImpl{repo: repo}
}

// GetProfile returns the target's profile, or (nil, nil) if they never
// saved one. Profiles are public display data; any authenticated caller
// may read any profile.
func (s *profileServiceImpl) GetProfile(ctx context.Context, callerID string) (*domain.Profile, error) {
	profile, err := s.repo.Get(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile creates or fully replaces the caller's own profile.
// Repeated saves simply overwrite.
func (s *profileServiceImpl) SaveProfile(ctx context.Context, callerID string, profile *domain.Profile) error {
	l := log.Ctx(ctx)

	if err := s.repo.Save(ctx, callerID, profile); err != nil {
		l.Error().Err(err).Msg("failed to save profile")
		return err
	}

	audit.Log(ctx, audit.ActionSaveProfile, callerID, "profile saved")
	return nil
}

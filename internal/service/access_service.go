package service

import (
	"context"
	"errors"

	"github.com/caffeinepub/cybermeet/internal/audit"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/pkg/log"
)

// accessServiceImpl implements AccessService.
type accessServiceImpl struct {
	repo            repository.OperatorRoleRepository
	bootstrapAdmins map[string]struct{}
	producer        events.Producer
}

// NewAccessService creates a new access service. Callers in bootstrapAdmins
// count as admins while they have no stored role, so role assignment works
// on a freshly initialised store; once a role row exists it takes
// precedence, bootstrap or not.
func NewAccessService(repo repository.OperatorRoleRepository, bootstrapAdmins []string, producer events.Producer) AccessService {
	admins := make(map[string]struct{}, len(bootstrapAdmins))
	for _, id := range bootstrapAdmins {
		admins[id] = struct{}{}
	}
	return &accessServiceImpl{
		repo:            repo,
		bootstrapAdmins: admins,
		producer:        producer,
	}
}

// GetCallerRole returns the caller's platform role. Unassigned callers are
// guests, unless they are bootstrap admins.
func (s *accessServiceImpl) GetCallerRole(ctx context.Context, callerID string) (domain.OperatorRole, error) {
	role, err := s.repo.Get(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotAssigned) {
			if _, ok := s.bootstrapAdmins[callerID]; ok {
				return domain.OperatorRoleAdmin, nil
			}
			return domain.OperatorRoleGuest, nil
		}
		return "", err
	}
	return role, nil
}

// IsAdmin reports whether the caller currently holds the admin role.
func (s *accessServiceImpl) IsAdmin(ctx context.Context, callerID string) (bool, error) {
	role, err := s.GetCallerRole(ctx, callerID)
	if err != nil {
		return false, err
	}
	return role == domain.OperatorRoleAdmin, nil
}

// AssignRole sets the target's platform role. Only a current admin may
// assign roles; an admin demoting themselves is allowed.
func (s *accessServiceImpl) AssignRole(ctx context.Context, callerID, targetID string, role domain.OperatorRole) error {
	l := log.Ctx(ctx)

	isAdmin, err := s.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}

	if err := s.repo.Assign(ctx, targetID, role); err != nil {
		l.Error().Err(err).Str(log.FieldTargetID, targetID).Msg("failed to assign role")
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionAssignRole, callerID, targetID+"="+string(role), "operator role assigned")
	publish(ctx, s.producer, events.TypeRoleAssigned, 0, callerID, map[string]string{
		"target": targetID,
		"role":   string(role),
	})
	return nil
}

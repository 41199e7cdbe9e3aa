package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/cybermeet/internal/domain"
)

func TestProfileLifecycle(t *testing.T) {
	d := setupDeps(t)
	svc := NewProfileService(d.profiles)
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, profile)

	require.NoError(t, svc.SaveProfile(ctx, "alice", &domain.Profile{
		DisplayName: "Alice",
		Role:        domain.ProfileRoleEngineer,
	}))

	profile, err = svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.DisplayName)
	assert.Equal(t, domain.ProfileRoleEngineer, profile.Role)

	// Saving again replaces the whole profile.
	require.NoError(t, svc.SaveProfile(ctx, "alice", &domain.Profile{
		DisplayName: "Alice L.",
		Role:        domain.ProfileRoleAnalyst,
	}))

	profile, err = svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice L.", profile.DisplayName)
	assert.Equal(t, domain.ProfileRoleAnalyst, profile.Role)
}

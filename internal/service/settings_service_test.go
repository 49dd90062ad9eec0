package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/service"
)

func TestSettingsService_GetCreatesDefaults(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ownerID := uuid.New()

	settings, err := e.settings.Get(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, settings.OwnerID)
	assert.Equal(t, 10.0, settings.DefaultFloorRate)
	assert.Equal(t, 120.0, settings.DefaultPainterRate)
}

func TestSettingsService_UpdateRecomputesOwnProjects(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	ownerID := uuid.New()
	project := e.createProject(t, ownerID)

	_, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)
	_, err = e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, Rate: 100, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	updated, err := e.settings.Update(ctx, ownerID, &domain.UpdateSettingsRequest{
		DefaultFloorRate:   10,
		DefaultWallRate:    10,
		DefaultPainterRate: 120,
		BufferDays:         2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.BufferDays)

	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.EstimatedDays, "buffer days flow into every project of the owner")
}

func TestSettingsService_RoleOverridesApply(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	ownerID := uuid.New()
	project := e.createProject(t, ownerID)

	_, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)
	_, err = e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, Rate: 100, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	floor := 15.0
	wall := 32.0
	_, err = e.settings.Update(ctx, ownerID, &domain.UpdateSettingsRequest{
		DefaultFloorRate:   10,
		DefaultWallRate:    10,
		DefaultPainterRate: 120,
		RoleOverrides: domain.RoleRateOverrides{
			"master": {FloorRate: &floor, WallRate: &wall},
		},
	})
	require.NoError(t, err)

	// one day of floor, one day of wall at the overridden rates
	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.EstimatedDays)
}

package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecraft/estimate-api/internal/repository"
	"github.com/sitecraft/estimate-api/internal/testutil"
)

func TestUserSettingsRepository_GetOrCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserSettingsRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	settings, err := repo.GetOrCreate(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, settings.OwnerID)
	assert.Equal(t, 10.0, settings.DefaultFloorRate)
	assert.Equal(t, 10.0, settings.DefaultWallRate)
	assert.Equal(t, 120.0, settings.DefaultPainterRate)
	assert.Equal(t, 0, settings.BufferDays)

	again, err := repo.GetOrCreate(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID, "second call must return the same row")
}

func TestUserSettingsRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)

	settings.DefaultFloorRate = 25
	settings.BufferDays = 2
	require.NoError(t, repo.Update(ctx, settings))

	reloaded, err := repo.GetOrCreate(ctx, settings.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, reloaded.DefaultFloorRate)
	assert.Equal(t, 2, reloaded.BufferDays)
}

package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/repository"
	"github.com/sitecraft/estimate-api/internal/testutil"
)

func TestMaterialRepository_LookupByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMaterialRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	global := &domain.Material{Name: "Cement", Unit: "bags", DefaultUnitPrice: 60}
	personal := &domain.Material{OwnerID: &ownerID, Name: "Cement", Unit: "bags", DefaultUnitPrice: 55}
	require.NoError(t, repo.Create(ctx, global))
	require.NoError(t, repo.Create(ctx, personal))

	t.Run("prefers the owner's entry", func(t *testing.T) {
		found, err := repo.LookupByName(ctx, ownerID, "cement")
		require.NoError(t, err)
		assert.Equal(t, personal.ID, found.ID)
	})

	t.Run("falls back to the global catalogue", func(t *testing.T) {
		found, err := repo.LookupByName(ctx, uuid.New(), "Cement")
		require.NoError(t, err)
		assert.Equal(t, global.ID, found.ID)
	})

	t.Run("lookup is case and whitespace insensitive", func(t *testing.T) {
		found, err := repo.LookupByName(ctx, ownerID, "  CEMENT ")
		require.NoError(t, err)
		assert.Equal(t, personal.ID, found.ID)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := repo.LookupByName(ctx, ownerID, "kryptonite")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestMaterialRepository_ListIncludesGlobal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMaterialRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, repo.Create(ctx, &domain.Material{Name: "Sand"}))
	require.NoError(t, repo.Create(ctx, &domain.Material{OwnerID: &ownerID, Name: "Grout"}))
	require.NoError(t, repo.Create(ctx, &domain.Material{OwnerID: &otherID, Name: "Paint"}))

	materials, err := repo.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, "Grout", materials[0].Name)
	assert.Equal(t, "Sand", materials[1].Name)
}

func TestMaterialRepository_CountByOwnerExcludesGlobal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMaterialRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	require.NoError(t, repo.Create(ctx, &domain.Material{Name: "Sand"}))
	require.NoError(t, repo.Create(ctx, &domain.Material{OwnerID: &ownerID, Name: "Grout"}))

	count, err := repo.CountByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

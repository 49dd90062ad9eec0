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

func seedSelection(t *testing.T, db *gorm.DB) (*domain.Project, *domain.Material, *domain.ProjectMaterial) {
	t.Helper()
	project := newProject(uuid.New(), "selection host", domain.ProjectTypeTiling)
	require.NoError(t, db.Create(project).Error)

	material := &domain.Material{Name: "Cement", Unit: "bags", DefaultUnitPrice: 60}
	require.NoError(t, db.Create(material).Error)

	pm := &domain.ProjectMaterial{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		Unit:       material.Unit,
		UnitPrice:  material.DefaultUnitPrice,
	}
	require.NoError(t, db.Create(pm).Error)
	return project, material, pm
}

func TestProjectMaterialRepository_GetByIDPreloadsMaterial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectMaterialRepository(db)
	ctx := context.Background()
	_, _, pm := seedSelection(t, db)

	found, err := repo.GetByID(ctx, pm.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Material)
	assert.Equal(t, "Cement", found.Material.Name)
	assert.Equal(t, 60.0, found.EffectiveUnitPrice())
}

func TestProjectMaterialRepository_GetByProjectAndMaterial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectMaterialRepository(db)
	ctx := context.Background()
	project, material, pm := seedSelection(t, db)

	found, err := repo.GetByProjectAndMaterial(ctx, project.ID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, pm.ID, found.ID)

	_, err = repo.GetByProjectAndMaterial(ctx, project.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectMaterialRepository_DuplicateSelectionRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectMaterialRepository(db)
	ctx := context.Background()
	project, material, _ := seedSelection(t, db)

	err := repo.Create(ctx, &domain.ProjectMaterial{
		ProjectID:  project.ID,
		MaterialID: material.ID,
	})
	assert.Error(t, err, "unique index must reject a second selection of the same material")
}

func TestProjectMaterialRepository_CountByMaterial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectMaterialRepository(db)
	ctx := context.Background()
	_, material, _ := seedSelection(t, db)

	count, err := repo.CountByMaterial(ctx, material.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByMaterial(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestProjectMaterialRepository_ListByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectMaterialRepository(db)
	ctx := context.Background()
	project, _, _ := seedSelection(t, db)

	sand := &domain.Material{Name: "Sand", Unit: "wheelbarrow"}
	require.NoError(t, db.Create(sand).Error)
	require.NoError(t, repo.Create(ctx, &domain.ProjectMaterial{
		ProjectID: project.ID, MaterialID: sand.ID, Unit: sand.Unit,
	}))

	selections, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, selections, 2)
	for _, pm := range selections {
		assert.NotNil(t, pm.Material)
	}
}

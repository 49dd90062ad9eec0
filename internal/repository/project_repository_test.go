package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/repository"
	"github.com/sitecraft/estimate-api/internal/testutil"
)

func newProject(ownerID uuid.UUID, name string, projectType domain.ProjectType) *domain.Project {
	return &domain.Project{
		OwnerID:         ownerID,
		Name:            name,
		ProjectType:     projectType,
		MeasurementUnit: domain.UnitMeters,
		ProfitType:      domain.ProfitTypeFixed,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	project := newProject(uuid.New(), "kitchen floor", domain.ProjectTypeTiling)
	require.NoError(t, repo.Create(ctx, project))
	require.NotEqual(t, uuid.Nil, project.ID)

	found, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "kitchen floor", found.Name)
	assert.Equal(t, domain.ProjectTypeTiling, found.ProjectType)
}

func TestProjectRepository_GetWithGraph(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	project := newProject(uuid.New(), "stairwell", domain.ProjectTypeTiling)
	require.NoError(t, repo.Create(ctx, project))
	require.NoError(t, db.Create(&domain.Room{
		ProjectID: project.ID,
		Name:      "stairs",
		TilingDetails: &domain.TilingRoomDetails{
			StairLength: 1.2, StairBreadth: 0.3, NumberOfSteps: 12,
		},
	}).Error)
	require.NoError(t, db.Create(&domain.Worker{
		ProjectID: project.ID, Role: domain.RoleTiler, Count: 2, RateType: domain.RateTypeDaily,
	}).Error)

	found, err := repo.GetWithGraph(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, found.Rooms, 1)
	require.NotNil(t, found.Rooms[0].TilingDetails)
	assert.Equal(t, 12, found.Rooms[0].TilingDetails.NumberOfSteps)
	require.Len(t, found.Workers, 1)
	assert.Equal(t, domain.RoleTiler, found.Workers[0].Role)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	project := newProject(uuid.New(), "doomed", domain.ProjectTypePainting)
	require.NoError(t, repo.Create(ctx, project))
	require.NoError(t, db.Create(&domain.Room{ProjectID: project.ID, Name: "hall"}).Error)
	require.NoError(t, db.Create(&domain.Worker{ProjectID: project.ID, Role: domain.RolePainter, Count: 1}).Error)

	require.NoError(t, repo.Delete(ctx, project.ID))

	_, err := repo.GetByID(ctx, project.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var rooms int64
	require.NoError(t, db.Model(&domain.Room{}).Where("project_id = ?", project.ID).Count(&rooms).Error)
	assert.Equal(t, int64(0), rooms)

	var workers int64
	require.NoError(t, db.Model(&domain.Worker{}).Where("project_id = ?", project.ID).Count(&workers).Error)
	assert.Equal(t, int64(0), workers)
}

func TestProjectRepository_ListFiltersAndPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, repo.Create(ctx, newProject(ownerID, "tiling one", domain.ProjectTypeTiling)))
	require.NoError(t, repo.Create(ctx, newProject(ownerID, "tiling two", domain.ProjectTypeTiling)))
	require.NoError(t, repo.Create(ctx, newProject(ownerID, "paint job", domain.ProjectTypePainting)))
	require.NoError(t, repo.Create(ctx, newProject(otherID, "not mine", domain.ProjectTypeTiling)))

	projects, total, err := repo.List(ctx, 1, 10, &ownerID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, projects, 3)

	tiling := domain.ProjectTypeTiling
	projects, total, err = repo.List(ctx, 1, 10, &ownerID, &tiling)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, projects, 2)

	projects, total, err = repo.List(ctx, 2, 2, &ownerID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, projects, 1)
}

func TestProjectRepository_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	require.NoError(t, repo.Create(ctx, newProject(ownerID, "Bathroom Refit", domain.ProjectTypeTiling)))
	require.NoError(t, repo.Create(ctx, newProject(ownerID, "Kitchen Floor", domain.ProjectTypeTiling)))
	require.NoError(t, repo.Create(ctx, newProject(uuid.New(), "Bathroom Elsewhere", domain.ProjectTypeTiling)))

	results, err := repo.Search(ctx, ownerID, "bath", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bathroom Refit", results[0].Name)
}

func TestProjectRepository_ListUpdatedSince(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	project := newProject(uuid.New(), "fresh", domain.ProjectTypeTiling)
	require.NoError(t, repo.Create(ctx, project))

	ids, err := repo.ListUpdatedSince(ctx, time.Now().Add(-time.Hour), 100)
	require.NoError(t, err)
	assert.Contains(t, ids, project.ID)

	ids, err = repo.ListUpdatedSince(ctx, time.Now().Add(time.Hour), 100)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProjectRepository_ListIDsByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	first := newProject(ownerID, "one", domain.ProjectTypeTiling)
	second := newProject(ownerID, "two", domain.ProjectTypePainting)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, newProject(uuid.New(), "theirs", domain.ProjectTypeTiling)))

	ids, err := repo.ListIDsByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
}

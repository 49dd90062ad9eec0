package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/engine"
	"github.com/sitecraft/estimate-api/internal/repository"
	"github.com/sitecraft/estimate-api/internal/service"
	"github.com/sitecraft/estimate-api/internal/testutil"
)

// denyingGate blocks creation of the named resource once current reaches
// the limit, mimicking a billing backend.
type denyingGate struct {
	resource service.QuotaResource
	limit    int64
}

func (g denyingGate) AllowCreate(ctx context.Context, ownerID uuid.UUID, resource service.QuotaResource, current int64) error {
	if resource == g.resource && current >= g.limit {
		return fmt.Errorf("%s limit reached: %w", resource, service.ErrQuotaDenied)
	}
	return nil
}

// env wires every service against one sqlite database.
type env struct {
	db       *gorm.DB
	projects *service.ProjectService
	rooms    *service.RoomService
	catalog  *service.MaterialService
	selected *service.ProjectMaterialService
	workers  *service.WorkerService
	settings *service.SettingsService
}

func newEnv(t *testing.T, quota service.QuotaGate) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	eng := engine.New(db, log, "")

	projectRepo := repository.NewProjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	pmRepo := repository.NewProjectMaterialRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	settingsRepo := repository.NewUserSettingsRepository(db)

	return env{
		db:       db,
		projects: service.NewProjectService(projectRepo, materialRepo, eng, quota, log),
		rooms:    service.NewRoomService(roomRepo, projectRepo, eng, quota, log),
		catalog:  service.NewMaterialService(materialRepo, pmRepo, quota, log),
		selected: service.NewProjectMaterialService(pmRepo, projectRepo, materialRepo, eng, quota, log),
		workers:  service.NewWorkerService(workerRepo, projectRepo, eng, quota, log),
		settings: service.NewSettingsService(settingsRepo, projectRepo, eng, log),
	}
}

func createProjectRequest(ownerID uuid.UUID) *domain.CreateProjectRequest {
	return &domain.CreateProjectRequest{
		OwnerID:           ownerID,
		Name:              "bathroom refit",
		ProjectType:       domain.ProjectTypeTiling,
		MeasurementUnit:   domain.UnitMeters,
		WastagePercentage: 3,
		ProfitType:        domain.ProfitTypeFixed,
		ProfitValue:       1000,
	}
}

func (e env) createProject(t *testing.T, ownerID uuid.UUID) *domain.ProjectDTO {
	t.Helper()
	dto, err := e.projects.Create(context.Background(), createProjectRequest(ownerID))
	require.NoError(t, err)
	return dto
}

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

func workerEnv(t *testing.T) (env, *domain.ProjectDTO) {
	t.Helper()
	e := newEnv(t, service.AllowAll{})
	project := e.createProject(t, uuid.New())

	_, err := e.rooms.Create(context.Background(), project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)
	return e, project
}

func TestWorkerService_CreateDrivesEstimate(t *testing.T) {
	e, project := workerEnv(t)
	ctx := context.Background()

	worker, err := e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, Rate: 100, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	// 15/30 floor + 32/20 wall rounds up to 3 days at 100 a day
	assert.Equal(t, 300.0, worker.TotalCost)
	assert.Equal(t, 30.0, worker.CoverageArea)

	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.EstimatedDays)
}

func TestWorkerService_CreateEnforcesWorkerQuota(t *testing.T) {
	e := newEnv(t, denyingGate{resource: service.QuotaWorkersPerProject, limit: 1})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	_, err := e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	_, err = e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleLabourer, Count: 2, RateType: domain.RateTypeDaily,
	})
	assert.ErrorIs(t, err, service.ErrQuotaDenied)
}

func TestWorkerService_CreateValidatesEnums(t *testing.T) {
	e, project := workerEnv(t)

	_, err := e.workers.Create(context.Background(), project.ID, &domain.CreateWorkerRequest{
		Role: "astronaut", Count: 1, RateType: domain.RateTypeDaily,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = e.workers.Create(context.Background(), project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, RateType: "weekly",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestWorkerService_UpdateChangesEstimate(t *testing.T) {
	e, project := workerEnv(t)
	ctx := context.Background()

	worker, err := e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, Rate: 100, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	// doubling the crew halves the duration
	updated, err := e.workers.Update(ctx, worker.ID, &domain.UpdateWorkerRequest{
		Role: domain.RoleMaster, Count: 2, Rate: 100, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.EstimatedDays)
	assert.Equal(t, 400.0, updated.TotalCost)
}

func TestWorkerService_DeleteResetsEstimate(t *testing.T) {
	e, project := workerEnv(t)
	ctx := context.Background()

	worker, err := e.workers.Create(ctx, project.ID, &domain.CreateWorkerRequest{
		Role: domain.RoleMaster, Count: 1, Rate: 100, RateType: domain.RateTypeDaily,
	})
	require.NoError(t, err)

	require.NoError(t, e.workers.Delete(ctx, worker.ID))

	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.EstimatedDays)

	assert.ErrorIs(t, e.workers.Delete(ctx, worker.ID), service.ErrWorkerNotFound)
}

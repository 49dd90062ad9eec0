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

func TestRoomService_CreateRecomputesProject(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	room, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 15.0, room.FloorArea)
	assert.Equal(t, 47.0, room.TotalArea)

	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 47.0, reloaded.TotalArea)
}

func TestRoomService_CreateUnknownProject(t *testing.T) {
	e := newEnv(t, service.AllowAll{})

	_, err := e.rooms.Create(context.Background(), uuid.New(), &domain.CreateRoomRequest{Name: "x"})
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestRoomService_CreateEnforcesRoomQuota(t *testing.T) {
	e := newEnv(t, denyingGate{resource: service.QuotaRoomsPerProject, limit: 1})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	_, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{Name: "first"})
	require.NoError(t, err)

	_, err = e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{Name: "second"})
	assert.ErrorIs(t, err, service.ErrQuotaDenied)
}

func TestRoomService_UpdateSwitchesDetailVariant(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	room, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "stairs", Length: 4, Breadth: 3, Height: 0,
		TilingDetails: &domain.TilingRoomDetailsDTO{
			StairLength: 1.2, StairBreadth: 0.3, NumberOfSteps: 10,
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 15.6, room.FloorArea, 0.001)

	updated, err := e.rooms.Update(ctx, room.ID, &domain.UpdateRoomRequest{
		Name: "stairs", Length: 4, Breadth: 3, Height: 0,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.TilingDetails)
	assert.Equal(t, 12.0, updated.FloorArea)
}

func TestRoomService_DeleteRecomputesProject(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	room, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)

	require.NoError(t, e.rooms.Delete(ctx, room.ID))

	reloaded, err := e.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloaded.TotalArea)
	assert.Empty(t, reloaded.Rooms)
}

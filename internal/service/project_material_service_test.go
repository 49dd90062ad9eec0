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

func TestProjectMaterialService_SelectDerivesQuantities(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	_, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)

	cement, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{
		Name: "Cement", Unit: "bags", DefaultUnitPrice: 60,
	})
	require.NoError(t, err)

	selectedDTO, err := e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: cement.ID})
	require.NoError(t, err)

	assert.Equal(t, "Cement", selectedDTO.MaterialName)
	assert.Equal(t, "bags", selectedDTO.Unit, "unit defaults to the catalogue unit")
	assert.InDelta(t, 7.83, selectedDTO.Quantity, 0.001)
	assert.InDelta(t, 8.23, selectedDTO.QuantityWithWastage, 0.001)
}

func TestProjectMaterialService_SelectTwiceConflicts(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	cement, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{Name: "Cement", Unit: "bags"})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: cement.ID})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: cement.ID})
	assert.ErrorIs(t, err, service.ErrMaterialAlreadySelected)
}

func TestProjectMaterialService_SelectEnforcesQuota(t *testing.T) {
	e := newEnv(t, denyingGate{resource: service.QuotaSelectedMaterials, limit: 1})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	cement, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{Name: "Cement", Unit: "bags"})
	require.NoError(t, err)
	sand, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{Name: "Sand", Unit: "wheelbarrow"})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: cement.ID})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: sand.ID})
	assert.ErrorIs(t, err, service.ErrQuotaDenied)
}

func TestProjectMaterialService_SelectUnknownMaterial(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	project := e.createProject(t, uuid.New())

	_, err := e.selected.Select(context.Background(), project.ID, &domain.SelectMaterialRequest{MaterialID: uuid.New()})
	assert.ErrorIs(t, err, service.ErrMaterialNotFound)
}

func TestProjectMaterialService_SelectRefusesForeignMaterial(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())
	otherOwner := uuid.New()

	private, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{
		OwnerID: &otherOwner, Name: "Imported Marble", Unit: "slabs",
	})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: private.ID})
	assert.ErrorIs(t, err, service.ErrNotOwner)

	own, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{
		OwnerID: &project.OwnerID, Name: "My Marble", Unit: "slabs",
	})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: own.ID})
	assert.NoError(t, err)
}

func TestProjectMaterialService_UpdateSelectionRepricesEstimate(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	_, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)

	cement, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{
		Name: "Cement", Unit: "bags", DefaultUnitPrice: 60,
	})
	require.NoError(t, err)

	selected, err := e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: cement.ID})
	require.NoError(t, err)
	require.InDelta(t, 60, selected.UnitPrice, 0.001)

	price := 90.0
	unit := "pallets"
	updated, err := e.selected.UpdateSelection(ctx, selected.ID, &domain.UpdateProjectMaterialRequest{
		Unit: &unit, UnitPrice: &price,
	})
	require.NoError(t, err)

	assert.InDelta(t, 90, updated.UnitPrice, 0.001)
	assert.Equal(t, "pallets", updated.Unit)
	assert.InDelta(t, 8.23, updated.QuantityWithWastage, 0.001, "derived quantities stay engine-owned")

	_, err = e.selected.UpdateSelection(ctx, uuid.New(), &domain.UpdateProjectMaterialRequest{UnitPrice: &price})
	assert.ErrorIs(t, err, service.ErrMaterialNotSelected)
}

func TestProjectMaterialService_DeselectRecomputes(t *testing.T) {
	e := newEnv(t, service.AllowAll{})
	ctx := context.Background()
	project := e.createProject(t, uuid.New())

	_, err := e.rooms.Create(ctx, project.ID, &domain.CreateRoomRequest{
		Name: "bathroom", Length: 5, Breadth: 3, Height: 2,
	})
	require.NoError(t, err)

	// without sand, cement borrows the tile cement rate once selected
	cement, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{Name: "Cement", Unit: "bags"})
	require.NoError(t, err)
	tileCement, err := e.catalog.Create(ctx, &domain.CreateMaterialRequest{Name: "Tile Cement", Unit: "bags"})
	require.NoError(t, err)

	_, err = e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: cement.ID})
	require.NoError(t, err)
	tcSelection, err := e.selected.Select(ctx, project.ID, &domain.SelectMaterialRequest{MaterialID: tileCement.ID})
	require.NoError(t, err)

	selections, err := e.selected.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	byName := map[string]domain.ProjectMaterialDTO{}
	for _, s := range selections {
		byName[s.MaterialName] = s
	}
	assert.InDelta(t, 11.75, byName["Cement"].Quantity, 0.001, "substituted rate while tile cement is on")

	require.NoError(t, e.selected.Deselect(ctx, tcSelection.ID))

	selections, err = e.selected.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.InDelta(t, 7.83, selections[0].Quantity, 0.001, "plain cement rate after deselection")
}

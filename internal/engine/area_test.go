package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
)

func testEngine() *Engine {
	return New(nil, zap.NewNop(), "")
}

func TestComputeRoomAreas_Basic(t *testing.T) {
	e := testEngine()
	room := &domain.Room{Name: "living room", Length: 5, Breadth: 3, Height: 2}

	e.ComputeRoomAreas(room, domain.ProjectTypeTiling, domain.UnitMeters)

	assert.Equal(t, 15.0, room.FloorArea)
	assert.Equal(t, 32.0, room.WallArea)
	assert.Equal(t, 47.0, room.TotalArea)

	// total 47 falls in the 1.16 wastage band
	assert.Equal(t, 17.4, room.FloorAreaWithWaste)
	assert.Equal(t, 37.12, room.WallAreaWithWaste)
	assert.Equal(t, 54.52, room.TotalAreaWithWaste)
}

func TestComputeRoomAreas_FeetConverted(t *testing.T) {
	e := testEngine()
	room := &domain.Room{Length: 10, Breadth: 10, Height: 0}

	e.ComputeRoomAreas(room, domain.ProjectTypeOther, domain.UnitFeet)

	assert.InDelta(t, 9.29, room.FloorArea, 0.001)
	assert.Equal(t, 0.0, room.WallArea)
	// total 9.29 <= 20, factor 1.20
	assert.InDelta(t, 11.15, room.TotalAreaWithWaste, 0.001)
}

func TestComputeRoomAreas_TilingStairsAndLandings(t *testing.T) {
	e := testEngine()
	room := &domain.Room{
		Length: 4, Breadth: 3, Height: 0,
		TilingDetails: &domain.TilingRoomDetails{
			StairLength: 1.2, StairBreadth: 0.3, NumberOfSteps: 10,
			LandingLength: 2, LandingBreadth: 1, NumberOfLandings: 2,
		},
	}

	e.ComputeRoomAreas(room, domain.ProjectTypeTiling, domain.UnitMeters)

	// 12 + 10 steps of 0.36 + 2 landings of 2
	assert.InDelta(t, 19.6, room.FloorArea, 0.001)
	assert.InDelta(t, 19.6, room.TotalArea, 0.001)
}

func TestComputeRoomAreas_TilingDetailsIgnoredForOtherProjectTypes(t *testing.T) {
	e := testEngine()
	room := &domain.Room{
		Length: 4, Breadth: 3, Height: 0,
		TilingDetails: &domain.TilingRoomDetails{
			StairLength: 1, StairBreadth: 1, NumberOfSteps: 5,
		},
	}

	e.ComputeRoomAreas(room, domain.ProjectTypePainting, domain.UnitMeters)

	assert.Equal(t, 12.0, room.FloorArea)
}

func TestComputeRoomAreas_PaintingOpenings(t *testing.T) {
	e := testEngine()
	room := &domain.Room{
		Length: 5, Breadth: 4, Height: 3,
		PaintingDetails: &domain.PaintingRoomDetails{
			DoorCount: 2, DoorArea: 1.8,
			WindowCount: 3, WindowArea: 1.2,
		},
	}

	e.ComputeRoomAreas(room, domain.ProjectTypePainting, domain.UnitMeters)

	// wall 54 minus 3.6 doors and 3.6 windows
	assert.Equal(t, 46.8, room.WallArea)
	assert.Equal(t, 20.0, room.FloorArea)
	assert.Equal(t, 66.8, room.TotalArea)
}

func TestComputeRoomAreas_PaintingOpeningsClampToZero(t *testing.T) {
	e := testEngine()
	room := &domain.Room{
		Length: 2, Breadth: 2, Height: 1,
		PaintingDetails: &domain.PaintingRoomDetails{
			DoorCount: 10, DoorArea: 5,
		},
	}

	e.ComputeRoomAreas(room, domain.ProjectTypePainting, domain.UnitMeters)

	assert.Equal(t, 0.0, room.WallArea)
	assert.Equal(t, 4.0, room.TotalArea)
}

func TestComputeRoomAreas_NegativeDimensionsTreatedAsZero(t *testing.T) {
	e := testEngine()
	room := &domain.Room{Length: -5, Breadth: 3, Height: 2}

	e.ComputeRoomAreas(room, domain.ProjectTypeTiling, domain.UnitMeters)

	assert.Equal(t, 0.0, room.FloorArea)
	assert.Equal(t, 12.0, room.WallArea)
	assert.Equal(t, 12.0, room.TotalArea)
}

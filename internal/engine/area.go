package engine

import (
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// AreaBreakdown carries the derived areas of one room, in square meters.
type AreaBreakdown struct {
	Floor float64
	Wall  float64
	Total float64
}

// detailCalculator is the contract a room-detail variant implements: given
// the room's dimensions in meters, return its area contribution.
type detailCalculator interface {
	CalculateAreaDetails(length, breadth, height float64) AreaBreakdown
}

// basicDetails is the variant for rooms whose project type has no detail
// record: plain rectangle floor and perimeter walls.
type basicDetails struct{}

func (basicDetails) CalculateAreaDetails(l, b, h float64) AreaBreakdown {
	floor := l * b
	wall := 2 * (l + b) * h
	return AreaBreakdown{Floor: floor, Wall: wall, Total: floor + wall}
}

// tilingDetails adds stair treads and landings to the floor area. Stair and
// landing dimensions arrive already converted to meters.
type tilingDetails struct {
	stairLength      float64
	stairBreadth     float64
	numberOfSteps    int
	landingLength    float64
	landingBreadth   float64
	numberOfLandings int
}

func (d tilingDetails) CalculateAreaDetails(l, b, h float64) AreaBreakdown {
	base := basicDetails{}.CalculateAreaDetails(l, b, h)
	base.Floor += d.stairLength * d.stairBreadth * float64(d.numberOfSteps)
	base.Floor += d.landingLength * d.landingBreadth * float64(d.numberOfLandings)
	base.Total = base.Floor + base.Wall
	return base
}

// paintingDetails subtracts door and window openings from the wall area.
// Opening areas are already in square meters.
type paintingDetails struct {
	doorCount   int
	doorArea    float64
	windowCount int
	windowArea  float64
}

func (d paintingDetails) CalculateAreaDetails(l, b, h float64) AreaBreakdown {
	base := basicDetails{}.CalculateAreaDetails(l, b, h)
	openings := float64(d.doorCount)*d.doorArea + float64(d.windowCount)*d.windowArea
	base.Wall -= openings
	if base.Wall < 0 {
		base.Wall = 0
	}
	base.Total = base.Floor + base.Wall
	return base
}

// detailsFor selects the detail variant matching the project type. A room
// carrying a detail record for a different project type contributes the
// basic areas only.
func detailsFor(room *domain.Room, projectType domain.ProjectType, unit domain.MeasurementUnit) detailCalculator {
	switch projectType {
	case domain.ProjectTypeTiling:
		if td := room.TilingDetails; td != nil {
			return tilingDetails{
				stairLength:      ToMeters(td.StairLength, unit),
				stairBreadth:     ToMeters(td.StairBreadth, unit),
				numberOfSteps:    td.NumberOfSteps,
				landingLength:    ToMeters(td.LandingLength, unit),
				landingBreadth:   ToMeters(td.LandingBreadth, unit),
				numberOfLandings: td.NumberOfLandings,
			}
		}
	case domain.ProjectTypePainting:
		if pd := room.PaintingDetails; pd != nil {
			return paintingDetails{
				doorCount:   pd.DoorCount,
				doorArea:    pd.DoorArea,
				windowCount: pd.WindowCount,
				windowArea:  pd.WindowArea,
			}
		}
	}
	return basicDetails{}
}

// ComputeRoomAreas derives a room's areas and their with-waste siblings,
// writing the results onto the room. Negative dimensions are treated as
// zero with a warning.
func (e *Engine) ComputeRoomAreas(room *domain.Room, projectType domain.ProjectType, unit domain.MeasurementUnit) {
	l := ToMeters(room.Length, unit)
	b := ToMeters(room.Breadth, unit)
	h := ToMeters(room.Height, unit)
	if l < 0 || b < 0 || h < 0 {
		e.logger.Warn("negative room dimension treated as zero",
			zap.String("room", room.Name),
			zap.Float64("length", room.Length),
			zap.Float64("breadth", room.Breadth),
			zap.Float64("height", room.Height))
		l, b, h = max0(l), max0(b), max0(h)
	}

	areas := detailsFor(room, projectType, unit).CalculateAreaDetails(l, b, h)
	factor := RoomAreaWastageFactor(areas.Total)

	room.FloorArea = round2(areas.Floor)
	room.WallArea = round2(areas.Wall)
	room.TotalArea = round2(areas.Total)
	room.FloorAreaWithWaste = round2(areas.Floor * factor)
	room.WallAreaWithWaste = round2(areas.Wall * factor)
	room.TotalAreaWithWaste = round2(areas.Total * factor)
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

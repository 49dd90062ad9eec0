// Package engine implements the deterministic estimation pipeline: room
// areas, material quantities, labour durations and costs, and the profit
// roll-up. All lengths are normalized to meters before any area math.
package engine

import (
	"math"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// Conversion factors to meters.
const (
	metersPerFoot       = 0.3048
	metersPerInch       = 0.0254
	metersPerCentimeter = 0.01
)

// ToMeters converts a scalar length to meters. Unknown units return the
// value unchanged; non-finite input returns 0.
func ToMeters(value float64, unit domain.MeasurementUnit) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	switch unit {
	case domain.UnitMeters:
		return value
	case domain.UnitCentimeters:
		return value * metersPerCentimeter
	case domain.UnitFeet:
		return value * metersPerFoot
	case domain.UnitInches:
		return value * metersPerInch
	default:
		return value
	}
}

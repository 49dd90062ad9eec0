package engine

import (
	"math"

	"github.com/sitecraft/estimate-api/internal/domain"
)

const hoursPerDay = 8

// EstimateDays derives the project duration from the combined coverage of
// its workers. Each worker's CoverageArea is overwritten with the
// effective floor rate for its role so downstream displays stay
// consistent with the estimate.
func EstimateDays(project *domain.Project, settings *domain.UserSettings) int {
	var combinedFloor, combinedWall float64
	for i := range project.Workers {
		w := &project.Workers[i]
		rates := ResolveRoleRates(w.Role, settings)
		w.CoverageArea = rates.Floor
		combinedFloor += float64(w.Count) * rates.Floor
		combinedWall += float64(w.Count) * rates.Wall
	}

	var floorDays, wallDays float64
	if project.TotalFloorArea > 0 && combinedFloor > 0 {
		floorDays = project.TotalFloorArea / combinedFloor
	}
	if project.TotalWallArea > 0 && combinedWall > 0 {
		wallDays = project.TotalWallArea / combinedWall
	}

	buffer := 0
	if settings != nil {
		buffer = settings.BufferDays
	}

	if floorDays+wallDays <= 0 {
		return buffer
	}

	days := int(math.Ceil(floorDays + wallDays))
	if days < 1 {
		days = 1
	}
	return days + buffer
}

// ComputeWorkerCost derives one worker group's total cost for the given
// estimated duration. Hourly rates assume an eight hour day. Any zero
// factor zeroes the wage component; the equipment surcharge applies only
// when both the per-day cost and the duration are positive.
func ComputeWorkerCost(w *domain.Worker, estimatedDays int) {
	days := float64(estimatedDays)
	var cost float64
	switch w.RateType {
	case domain.RateTypeHourly:
		cost = w.Rate * float64(w.Count) * days * hoursPerDay
	default:
		cost = w.Rate * float64(w.Count) * days
	}

	if w.SpecialEquipmentCostPerDay > 0 && days > 0 {
		cost += w.SpecialEquipmentCostPerDay * days
	}

	w.TotalCost = round2(cost)
}

package engine

// Material wastage is tiered twice: the user-declared percentage selects a
// band, and the project's relevant area selects the column within it. The
// effective percent is written back onto the project after the material
// pass.

// Declared-tier thresholds. A declared value of "3" means the lowest band,
// "5" the middle; anything above is the top band.
const (
	lowTierMax = 3.01
	midTierMax = 5.01
)

// Area breakpoints for the material wastage columns.
const (
	smallAreaMax  = 55.0
	mediumAreaMax = 200.0
)

// MaterialWastagePercent maps the user-declared tier and the relevant area
// to the effective wastage percent applied to material quantities.
func MaterialWastagePercent(declaredTier, area float64) float64 {
	switch {
	case declaredTier <= lowTierMax:
		switch {
		case area <= smallAreaMax:
			return 5
		case area <= mediumAreaMax:
			return 3
		default:
			return 2
		}
	case declaredTier <= midTierMax:
		switch {
		case area <= smallAreaMax:
			return 10
		case area <= mediumAreaMax:
			return 7
		default:
			return 5
		}
	default:
		switch {
		case area <= smallAreaMax:
			return 15
		case area <= mediumAreaMax:
			return 12
		default:
			return 10
		}
	}
}

// MaterialWastageFactor returns the multiplier form of the effective
// percent: quantity_with_wastage = quantity * factor.
func MaterialWastageFactor(declaredTier, area float64) float64 {
	return 1 + MaterialWastagePercent(declaredTier, area)/100
}

// RoomAreaWastageFactor returns the with-waste multiplier for room areas.
// The factor is selected on the room's combined total area and applied to
// floor, wall and total alike.
func RoomAreaWastageFactor(area float64) float64 {
	switch {
	case area <= 20:
		return 1.20
	case area <= 50:
		return 1.16
	case area <= 100:
		return 1.08
	default:
		return 1.05
	}
}

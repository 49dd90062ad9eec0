package engine

import (
	"strings"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// Rate expresses how much of a material one square meter of relevant area
// consumes. Most rates are constants; tile-like materials derive the rate
// from a face area instead, so they are expressed as functions.
type Rate struct {
	constant float64
	fn       func(area float64) float64
}

// ConstRate builds a constant quantity-per-m2 rate.
func ConstRate(v float64) Rate { return Rate{constant: v} }

// FuncRate builds an area-dependent rate.
func FuncRate(fn func(area float64) float64) Rate { return Rate{fn: fn} }

// Apply resolves the rate for the given relevant area.
func (r Rate) Apply(area float64) float64 {
	if r.fn != nil {
		return r.fn(area)
	}
	return r.constant
}

// Tile face areas used for count-per-m2 rates, in square meters.
const (
	pavementTileFaceArea = 0.04 // 20x20 cm paver
	masonryBlockFaceArea = 0.09 // 45x20 cm block
)

// perFaceArea returns a rate of one tile per faceArea square meters.
func perFaceArea(faceArea float64) Rate {
	return FuncRate(func(float64) float64 {
		if faceArea <= 0 {
			return 0
		}
		return 1 / faceArea
	})
}

// coverageTables maps project type -> canonical material name -> rate.
// Rates are quantity of material per m2 of the project's total area.
// Missing entries yield rate 0 and, downstream, quantity 0.
var coverageTables = map[domain.ProjectType]map[string]Rate{
	domain.ProjectTypeTiling: {
		"cement":      ConstRate(1.0 / 6),
		"sand":        ConstRate(1.4 / 6),
		"chemical":    ConstRate(1.0 / 6.72),
		"tile cement": ConstRate(1.0 / 4),
		"grout":       ConstRate(1.0 / 4.6666),
	},
	domain.ProjectTypePavement: {
		"cement":         ConstRate(1.0 / 6),
		"sand":           ConstRate(1.4 / 6),
		"pavement tiles": perFaceArea(pavementTileFaceArea),
	},
	domain.ProjectTypeMasonry: {
		"cement":        ConstRate(1.0 / 6),
		"sand":          ConstRate(1.4 / 6),
		"masonry tiles": perFaceArea(masonryBlockFaceArea),
	},
	domain.ProjectTypePainting: {
		"paint":  ConstRate(1.0 / 10),
		"primer": ConstRate(1.0 / 12),
	},
}

// canonicalAliases maps known alternate catalogue names onto the canonical
// coverage-table names. Material.Aliases extend this per catalogue entry.
var canonicalAliases = map[string]string{
	"tile adhesive": "tile cement",
}

// CanonicalMaterialName lowercases and resolves built-in aliases.
func CanonicalMaterialName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := canonicalAliases[n]; ok {
		return canonical
	}
	return n
}

// CoverageRate looks up the rate for a material under a project type.
// Unknown project types fall back to the "other" table (empty), yielding 0.
func CoverageRate(projectType domain.ProjectType, materialName string) (Rate, bool) {
	table, ok := coverageTables[projectType]
	if !ok {
		return Rate{}, false
	}
	rate, ok := table[CanonicalMaterialName(materialName)]
	return rate, ok
}

// RoleRates holds a role's floor and wall coverage in m2/worker/day.
type RoleRates struct {
	Floor float64
	Wall  float64
}

// roleDefaults are the hardcoded per-role coverage rates. Roles not listed
// here use the settings-driven fallback.
var roleDefaults = map[domain.WorkerRole]RoleRates{
	domain.RoleMaster:     {Floor: 30, Wall: 20},
	domain.RoleLabourer:   {Floor: 0, Wall: 0},
	domain.RoleSupervisor: {Floor: 0, Wall: 0},
	domain.RolePainter:    {Floor: 0, Wall: 120},
}

// ResolveRoleRates resolves a worker role to its effective coverage rates.
// Precedence, field by field: settings JSON override, hardcoded role
// default, settings fallback rates. The painter wall fallback comes from
// the settings' painter rate.
func ResolveRoleRates(role domain.WorkerRole, settings *domain.UserSettings) RoleRates {
	rates := RoleRates{Floor: 10, Wall: 10}
	if settings != nil {
		if settings.DefaultFloorRate > 0 {
			rates.Floor = settings.DefaultFloorRate
		}
		if settings.DefaultWallRate > 0 {
			rates.Wall = settings.DefaultWallRate
		}
	}

	if def, ok := roleDefaults[role]; ok {
		rates = def
	}
	if role == domain.RolePainter && settings != nil && settings.DefaultPainterRate > 0 {
		rates.Wall = settings.DefaultPainterRate
	}

	if settings != nil {
		if override, ok := settings.RoleOverrides[string(role)]; ok {
			if override.FloorRate != nil {
				rates.Floor = *override.FloorRate
			}
			if override.WallRate != nil {
				rates.Wall = *override.WallRate
			}
		}
	}
	return rates
}

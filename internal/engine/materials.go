package engine

import (
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// Mortar thickness at or above this value adds a 7% surcharge to the
// bonding materials.
const mortarSurchargeThreshold = 9.88

const mortarSurchargeFactor = 1.07

// Materials subject to the mortar-thickness surcharge, by canonical name.
var mortarSensitive = map[string]bool{
	"cement":      true,
	"sand":        true,
	"tile cement": true,
	"chemical":    true,
}

// Sand presentation breakpoints. Raw sand quantity is interpreted as
// wheelbarrows and re-expressed in the largest sensible container.
const (
	largeTipperWheelbarrows = 300.0
	smallTipperWheelbarrows = 175.0
	headpansPerWheelbarrow  = 8.0
)

const groutBagDivisor = 3.0

// materialName resolves the catalogue name of a selection, preferring the
// material's own aliases before the built-in canonical set.
func materialName(pm *domain.ProjectMaterial) string {
	if pm.Material == nil {
		return ""
	}
	return CanonicalMaterialName(pm.Material.Name)
}

// selectedNames returns the canonical names of every material selected on
// the project, including per-material catalogue aliases.
func selectedNames(materials []domain.ProjectMaterial) map[string]bool {
	names := make(map[string]bool, len(materials))
	for i := range materials {
		m := materials[i].Material
		if m == nil {
			continue
		}
		names[CanonicalMaterialName(m.Name)] = true
		for _, alias := range m.Aliases {
			names[CanonicalMaterialName(alias)] = true
		}
	}
	return names
}

// resolveRate picks the coverage rate for one selection. Cement follows
// the substitution rule: with sand on the project it keeps the generic
// cement rate; without sand but with tile cement (or its aliases) it
// borrows the tile cement rate.
func (e *Engine) resolveRate(projectType domain.ProjectType, pm *domain.ProjectMaterial, selected map[string]bool) Rate {
	name := materialName(pm)
	if name == "" {
		return Rate{}
	}

	if name == "cement" && !selected["sand"] && selected["tile cement"] {
		if rate, ok := CoverageRate(projectType, "tile cement"); ok {
			return rate
		}
	}

	rate, ok := CoverageRate(projectType, name)
	if !ok {
		e.logger.Warn("no coverage entry for material, quantity will be zero",
			zap.String("material", name),
			zap.String("project_type", string(projectType)))
		return Rate{}
	}
	return rate
}

// ComputeMaterialQuantity derives one selection's quantities and unit.
// relevantArea is the project's total area; declaredTier is the project's
// wastage tier as it stood when the recompute began. Returns the effective
// wastage percent chosen so the orchestrator can write it back.
func (e *Engine) ComputeMaterialQuantity(
	pm *domain.ProjectMaterial,
	project *domain.Project,
	selected map[string]bool,
	relevantArea, declaredTier float64,
) float64 {
	rate := e.resolveRate(project.ProjectType, pm, selected)
	raw := relevantArea * rate.Apply(relevantArea)

	effectivePercent := MaterialWastagePercent(declaredTier, relevantArea)
	withWaste := raw * (1 + effectivePercent/100)

	name := materialName(pm)
	if project.MortarThickness >= mortarSurchargeThreshold && mortarSensitive[name] {
		raw *= mortarSurchargeFactor
		withWaste *= mortarSurchargeFactor
	}

	unit := pm.Unit
	switch name {
	case "sand":
		raw, withWaste, unit = convertSand(raw, withWaste)
	case "grout":
		raw /= groutBagDivisor
		withWaste /= groutBagDivisor
		unit = "bags"
	}

	pm.Quantity = round2(raw)
	pm.QuantityWithWastage = round2(withWaste)
	pm.Unit = unit
	return effectivePercent
}

// convertSand re-expresses a wheelbarrow quantity in the presentation
// container matching its magnitude. The container is chosen on the raw
// quantity and the same divisor applies to the with-waste sibling.
func convertSand(raw, withWaste float64) (float64, float64, string) {
	switch {
	case raw >= largeTipperWheelbarrows:
		return raw / largeTipperWheelbarrows, withWaste / largeTipperWheelbarrows, "large tipper"
	case raw >= smallTipperWheelbarrows:
		return raw / smallTipperWheelbarrows, withWaste / smallTipperWheelbarrows, "small tipper"
	case raw >= 1:
		return raw, withWaste, "wheelbarrow"
	default:
		return raw * headpansPerWheelbarrow, withWaste * headpansPerWheelbarrow, "headpan"
	}
}

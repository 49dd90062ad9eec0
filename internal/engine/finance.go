package engine

import (
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// PercentageBase selects what a percentage profit applies to. The source
// domain never pinned this down, so it is explicit configuration rather
// than a hardcoded choice.
type PercentageBase string

const (
	PercentageBaseCombined  PercentageBase = "combined"
	PercentageBaseMaterials PercentageBase = "materials"
	PercentageBaseLabour    PercentageBase = "labour"
)

// FinancialSummary is the outcome of the profit roll-up.
type FinancialSummary struct {
	MaterialCost   float64
	LabourCost     float64
	TotalLaborCost float64 // displayed labour total, per profit policy
	Profit         float64
	CostPerArea    float64
}

// ComputeFinancials rolls material and labour costs into the project's
// profit figures. M is priced from the selection-time unit price snapshot;
// L is the sum of worker costs already derived this recompute.
func (e *Engine) ComputeFinancials(project *domain.Project) FinancialSummary {
	var materialCost float64
	for i := range project.ProjectMaterials {
		pm := &project.ProjectMaterials[i]
		materialCost += pm.QuantityWithWastage * pm.EffectiveUnitPrice()
	}

	var labourCost float64
	for i := range project.Workers {
		labourCost += project.Workers[i].TotalCost
	}

	area := project.TotalAreaWithWaste
	summary := FinancialSummary{MaterialCost: materialCost, LabourCost: labourCost}

	switch project.ProfitType {
	case domain.ProfitTypeFixed:
		summary.TotalLaborCost = project.ProfitValue
		summary.Profit = project.ProfitValue - labourCost
		if area > 0 {
			summary.CostPerArea = summary.TotalLaborCost / area
		}
	case domain.ProfitTypePerArea:
		summary.TotalLaborCost = project.ProfitValue * area
		summary.Profit = summary.TotalLaborCost - labourCost
		summary.CostPerArea = project.ProfitValue
	case domain.ProfitTypePercentage:
		base := materialCost + labourCost
		switch e.percentageBase {
		case PercentageBaseMaterials:
			base = materialCost
		case PercentageBaseLabour:
			base = labourCost
		}
		summary.Profit = project.ProfitValue / 100 * base
		summary.TotalLaborCost = labourCost + summary.Profit
		if area > 0 {
			summary.CostPerArea = summary.TotalLaborCost / area
		}
	default:
		e.logger.Warn("unknown profit type, financials left at zero",
			zap.String("profit_type", string(project.ProfitType)))
	}

	summary.TotalLaborCost = round2(summary.TotalLaborCost)
	summary.Profit = round2(summary.Profit)
	summary.CostPerArea = round2(summary.CostPerArea)
	return summary
}

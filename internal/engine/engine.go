package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// Engine is the estimation orchestrator. Recompute rebuilds every derived
// field of a project inside one transaction; Preview runs the identical
// pipeline on an in-memory graph without touching the database.
type Engine struct {
	db             *gorm.DB
	logger         *zap.Logger
	percentageBase PercentageBase
}

// New creates an Engine. percentageBase selects the base for percentage
// profit; an empty value means combined material plus labour cost.
func New(db *gorm.DB, logger *zap.Logger, percentageBase PercentageBase) *Engine {
	if percentageBase == "" {
		percentageBase = PercentageBaseCombined
	}
	return &Engine{db: db, logger: logger, percentageBase: percentageBase}
}

// Recompute reloads the full project graph, reruns the pipeline and
// persists the derived fields. The whole operation commits atomically; on
// any error the previously persisted state survives untouched.
func (e *Engine) Recompute(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	var project *domain.Project

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := e.loadProject(tx, projectID)
		if err != nil {
			return err
		}

		settings, err := e.loadSettings(tx, loaded.OwnerID)
		if err != nil {
			return err
		}

		e.ComputeAll(loaded, settings)

		if err := e.persist(tx, loaded); err != nil {
			return err
		}

		project = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("recompute finished",
		zap.String("project_id", projectID.String()),
		zap.Float64("total_area", project.TotalArea),
		zap.Int("estimated_days", project.EstimatedDays))
	return project, nil
}

// Preview runs the pipeline on a draft graph. Nothing is persisted; the
// draft is mutated in place and returned.
func (e *Engine) Preview(ctx context.Context, draft *domain.Project) (*domain.Project, error) {
	settings, err := e.loadSettings(e.db.WithContext(ctx), draft.OwnerID)
	if err != nil {
		return nil, err
	}
	e.ComputeAll(draft, settings)
	return draft, nil
}

// ComputeAll runs the full pipeline on an in-memory graph: room areas,
// project aggregates, labour days and costs, material quantities, and the
// financial roll-up, in strict dependency order.
func (e *Engine) ComputeAll(project *domain.Project, settings *domain.UserSettings) {
	// The persisted wastage percentage is a tier selector on entry and the
	// chosen effective percent on exit; snapshot it before the material
	// pass overwrites it.
	declaredTier := project.WastagePercentage

	for i := range project.Rooms {
		e.ComputeRoomAreas(&project.Rooms[i], project.ProjectType, project.MeasurementUnit)
	}

	var floor, wall, total, floorWaste, wallWaste, totalWaste float64
	for i := range project.Rooms {
		r := &project.Rooms[i]
		floor += r.FloorArea
		wall += r.WallArea
		total += r.TotalArea
		floorWaste += r.FloorAreaWithWaste
		wallWaste += r.WallAreaWithWaste
		totalWaste += r.TotalAreaWithWaste
	}
	project.TotalFloorArea = round2(floor)
	project.TotalWallArea = round2(wall)
	project.TotalArea = round2(total)
	project.TotalFloorAreaWithWaste = round2(floorWaste)
	project.TotalWallAreaWithWaste = round2(wallWaste)
	project.TotalAreaWithWaste = round2(totalWaste)

	project.EstimatedDays = EstimateDays(project, settings)

	for i := range project.Workers {
		ComputeWorkerCost(&project.Workers[i], project.EstimatedDays)
	}

	if len(project.ProjectMaterials) > 0 {
		selected := selectedNames(project.ProjectMaterials)
		var effective float64
		for i := range project.ProjectMaterials {
			effective = e.ComputeMaterialQuantity(
				&project.ProjectMaterials[i], project, selected,
				project.TotalArea, declaredTier)
		}
		project.WastagePercentage = effective
	}

	fin := e.ComputeFinancials(project)
	project.TotalLaborCost = fin.TotalLaborCost
	project.CostPerArea = fin.CostPerArea
	project.Profit = fin.Profit
}

// loadProject fetches the full graph under an exclusive row lock so
// concurrent recomputes of the same project serialize.
func (e *Engine) loadProject(tx *gorm.DB, projectID uuid.UUID) (*domain.Project, error) {
	query := tx.
		Preload("Rooms.TilingDetails").
		Preload("Rooms.PaintingDetails").
		Preload("ProjectMaterials.Material").
		Preload("Workers")
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var project domain.Project
	if err := query.First(&project, "id = ?", projectID).Error; err != nil {
		return nil, fmt.Errorf("load project %s: %w", projectID, err)
	}
	return &project, nil
}

// loadSettings fetches the owner's settings; absent rows yield defaults
// without creating anything (settings are read-only during a recompute).
func (e *Engine) loadSettings(tx *gorm.DB, ownerID uuid.UUID) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	err := tx.First(&settings, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := domain.DefaultUserSettings(ownerID)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings for owner %s: %w", ownerID, err)
	}
	return &settings, nil
}

// persist writes the derived fields of the whole graph back. Associations
// are omitted on each save so gorm does not resurrect or duplicate child
// rows.
func (e *Engine) persist(tx *gorm.DB, project *domain.Project) error {
	for i := range project.Rooms {
		if err := tx.Omit(clause.Associations).Save(&project.Rooms[i]).Error; err != nil {
			return fmt.Errorf("persist room %s: %w", project.Rooms[i].ID, err)
		}
	}
	for i := range project.Workers {
		if err := tx.Omit(clause.Associations).Save(&project.Workers[i]).Error; err != nil {
			return fmt.Errorf("persist worker %s: %w", project.Workers[i].ID, err)
		}
	}
	for i := range project.ProjectMaterials {
		if err := tx.Omit(clause.Associations).Save(&project.ProjectMaterials[i]).Error; err != nil {
			return fmt.Errorf("persist project material %s: %w", project.ProjectMaterials[i].ID, err)
		}
	}
	if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
		return fmt.Errorf("persist project %s: %w", project.ID, err)
	}
	return nil
}

// round2 rounds to two decimal places, the storage precision of every
// derived column.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

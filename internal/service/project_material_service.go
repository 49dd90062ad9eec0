package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/engine"
	"github.com/sitecraft/estimate-api/internal/mapper"
	"github.com/sitecraft/estimate-api/internal/repository"
)

// ProjectMaterialService handles the selection of catalogue materials for
// a project. Selecting or dropping a material changes cement substitution
// and mortar surcharge decisions for every other selected material, so
// both paths recompute the whole project.
type ProjectMaterialService struct {
	projectMaterialRepo *repository.ProjectMaterialRepository
	projectRepo         *repository.ProjectRepository
	materialRepo        *repository.MaterialRepository
	engine              *engine.Engine
	quota               QuotaGate
	logger              *zap.Logger
}

// NewProjectMaterialService creates a new ProjectMaterialService
func NewProjectMaterialService(
	projectMaterialRepo *repository.ProjectMaterialRepository,
	projectRepo *repository.ProjectRepository,
	materialRepo *repository.MaterialRepository,
	eng *engine.Engine,
	quota QuotaGate,
	logger *zap.Logger,
) *ProjectMaterialService {
	return &ProjectMaterialService{
		projectMaterialRepo: projectMaterialRepo,
		projectRepo:         projectRepo,
		materialRepo:        materialRepo,
		engine:              eng,
		quota:               quota,
		logger:              logger,
	}
}

// Select adds a catalogue material to a project, snapshotting its current
// price. A material can be selected at most once per project.
func (s *ProjectMaterialService) Select(ctx context.Context, projectID uuid.UUID, req *domain.SelectMaterialRequest) (*domain.ProjectMaterialDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	current, err := s.projectMaterialRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count material selections: %w", err)
	}
	if err := s.quota.AllowCreate(ctx, project.OwnerID, QuotaSelectedMaterials, current); err != nil {
		return nil, err
	}

	material, err := s.materialRepo.GetByID(ctx, req.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	// only global entries and the owner's own catalogue are selectable
	if material.OwnerID != nil && *material.OwnerID != project.OwnerID {
		return nil, ErrNotOwner
	}

	_, err = s.projectMaterialRepo.GetByProjectAndMaterial(ctx, projectID, req.MaterialID)
	if err == nil {
		return nil, ErrMaterialAlreadySelected
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check material selection: %w", err)
	}

	unit := req.Unit
	if unit == "" {
		unit = material.Unit
	}

	pm := &domain.ProjectMaterial{
		ProjectID:  projectID,
		MaterialID: material.ID,
		Unit:       unit,
		UnitPrice:  material.DefaultUnitPrice,
	}

	if err := s.projectMaterialRepo.Create(ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to select material: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	created, err := s.projectMaterialRepo.GetByID(ctx, pm.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload material selection: %w", err)
	}

	s.logger.Info("material selected",
		zap.String("project_id", projectID.String()),
		zap.String("material_id", material.ID.String()),
		zap.String("name", material.Name))

	dto := mapper.ToProjectMaterialDTO(created)
	return &dto, nil
}

func (s *ProjectMaterialService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMaterialDTO, error) {
	pms, err := s.projectMaterialRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project materials: %w", err)
	}

	dtos := make([]domain.ProjectMaterialDTO, len(pms))
	for i := range pms {
		dtos[i] = mapper.ToProjectMaterialDTO(&pms[i])
	}
	return dtos, nil
}

// UpdateSelection changes a selection's unit or its price snapshot and
// recomputes the project. The derived quantity fields stay engine-owned.
func (s *ProjectMaterialService) UpdateSelection(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectMaterialRequest) (*domain.ProjectMaterialDTO, error) {
	pm, err := s.projectMaterialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotSelected
		}
		return nil, fmt.Errorf("failed to get material selection: %w", err)
	}

	if req.Unit != nil {
		pm.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		pm.UnitPrice = *req.UnitPrice
	}

	if err := s.projectMaterialRepo.Update(ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to update material selection: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, pm.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	updated, err := s.projectMaterialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload material selection: %w", err)
	}

	dto := mapper.ToProjectMaterialDTO(updated)
	return &dto, nil
}

// Deselect removes a material selection and recomputes the project.
func (s *ProjectMaterialService) Deselect(ctx context.Context, id uuid.UUID) error {
	pm, err := s.projectMaterialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotSelected
		}
		return fmt.Errorf("failed to get material selection: %w", err)
	}

	if err := s.projectMaterialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to deselect material: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, pm.ProjectID); err != nil {
		return fmt.Errorf("failed to recompute project: %w", err)
	}

	s.logger.Info("material deselected",
		zap.String("project_id", pm.ProjectID.String()),
		zap.String("material_id", pm.MaterialID.String()))
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/mapper"
	"github.com/sitecraft/estimate-api/internal/repository"
)

// MaterialService handles business logic for the material catalogue.
// Catalogue edits never touch existing estimates; selections snapshot
// their price at selection time.
type MaterialService struct {
	materialRepo        *repository.MaterialRepository
	projectMaterialRepo *repository.ProjectMaterialRepository
	quota               QuotaGate
	logger              *zap.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(
	materialRepo *repository.MaterialRepository,
	projectMaterialRepo *repository.ProjectMaterialRepository,
	quota QuotaGate,
	logger *zap.Logger,
) *MaterialService {
	return &MaterialService{
		materialRepo:        materialRepo,
		projectMaterialRepo: projectMaterialRepo,
		quota:               quota,
		logger:              logger,
	}
}

func (s *MaterialService) Create(ctx context.Context, req *domain.CreateMaterialRequest) (*domain.MaterialDTO, error) {
	if req.OwnerID != nil {
		current, err := s.materialRepo.CountByOwner(ctx, *req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to count materials: %w", err)
		}
		if err := s.quota.AllowCreate(ctx, *req.OwnerID, QuotaMaterials, current); err != nil {
			return nil, err
		}
	}

	material := &domain.Material{
		OwnerID:             req.OwnerID,
		Name:                req.Name,
		Aliases:             req.Aliases,
		Unit:                req.Unit,
		DefaultUnitPrice:    req.DefaultUnitPrice,
		DefaultCoverageArea: req.DefaultCoverageArea,
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info("material created",
		zap.String("material_id", material.ID.String()),
		zap.String("name", material.Name))

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

func (s *MaterialService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MaterialDTO, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

// List returns the catalogue visible to an owner: their own materials plus
// the global ones.
func (s *MaterialService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.MaterialDTO, error) {
	materials, err := s.materialRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	dtos := make([]domain.MaterialDTO, len(materials))
	for i := range materials {
		dtos[i] = mapper.ToMaterialDTO(&materials[i])
	}
	return dtos, nil
}

// LookupByName resolves a material name case-insensitively, preferring the
// owner's materials over global ones.
func (s *MaterialService) LookupByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.MaterialDTO, error) {
	material, err := s.materialRepo.LookupByName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to look up material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

// Update edits a catalogue entry. Existing selections keep their snapshot
// price, so past estimates are unaffected.
func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateMaterialRequest) (*domain.MaterialDTO, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	material.Name = req.Name
	material.Aliases = req.Aliases
	material.Unit = req.Unit
	material.DefaultUnitPrice = req.DefaultUnitPrice
	material.DefaultCoverageArea = req.DefaultCoverageArea

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

// Delete removes a catalogue entry. Entries still selected by a project
// are protected; drop the selections first.
func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.materialRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to get material: %w", err)
	}

	selections, err := s.projectMaterialRepo.CountByMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count material selections: %w", err)
	}
	if selections > 0 {
		return ErrMaterialInUse
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}

	s.logger.Info("material deleted", zap.String("material_id", id.String()))
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/engine"
	"github.com/sitecraft/estimate-api/internal/mapper"
	"github.com/sitecraft/estimate-api/internal/repository"
)

// SettingsService handles per-owner estimation defaults. Settings feed the
// labour estimate of every project the owner has, so an update recomputes
// all of them.
type SettingsService struct {
	settingsRepo *repository.UserSettingsRepository
	projectRepo  *repository.ProjectRepository
	engine       *engine.Engine
	logger       *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsRepo *repository.UserSettingsRepository,
	projectRepo *repository.ProjectRepository,
	eng *engine.Engine,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		projectRepo:  projectRepo,
		engine:       eng,
		logger:       logger,
	}
}

// Get returns the owner's settings, creating the row with defaults on
// first access.
func (s *SettingsService) Get(ctx context.Context, ownerID uuid.UUID) (*domain.UserSettingsDTO, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	dto := mapper.ToUserSettingsDTO(settings)
	return &dto, nil
}

// Update replaces the owner's defaults and recomputes every project they
// own. A failed recompute on one project does not block the rest; it is
// logged and the sweep job will retry it.
func (s *SettingsService) Update(ctx context.Context, ownerID uuid.UUID, req *domain.UpdateSettingsRequest) (*domain.UserSettingsDTO, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings.DefaultFloorRate = req.DefaultFloorRate
	settings.DefaultWallRate = req.DefaultWallRate
	settings.DefaultPainterRate = req.DefaultPainterRate
	settings.BufferDays = req.BufferDays
	settings.RoleOverrides = req.RoleOverrides

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	ids, err := s.projectRepo.ListIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner projects: %w", err)
	}
	for _, id := range ids {
		if _, err := s.engine.Recompute(ctx, id); err != nil {
			s.logger.Error("recompute after settings update failed",
				zap.String("project_id", id.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("settings updated",
		zap.String("owner_id", ownerID.String()),
		zap.Int("projects_recomputed", len(ids)))

	dto := mapper.ToUserSettingsDTO(settings)
	return &dto, nil
}

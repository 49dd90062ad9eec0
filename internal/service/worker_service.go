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

// WorkerService handles business logic for worker groups. Workers drive
// the day estimate, so every mutation recomputes the project.
type WorkerService struct {
	workerRepo  *repository.WorkerRepository
	projectRepo *repository.ProjectRepository
	engine      *engine.Engine
	quota       QuotaGate
	logger      *zap.Logger
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(
	workerRepo *repository.WorkerRepository,
	projectRepo *repository.ProjectRepository,
	eng *engine.Engine,
	quota QuotaGate,
	logger *zap.Logger,
) *WorkerService {
	return &WorkerService{
		workerRepo:  workerRepo,
		projectRepo: projectRepo,
		engine:      eng,
		quota:       quota,
		logger:      logger,
	}
}

func (s *WorkerService) Create(ctx context.Context, projectID uuid.UUID, req *domain.CreateWorkerRequest) (*domain.WorkerDTO, error) {
	if !req.Role.IsValid() || !req.RateType.IsValid() {
		return nil, ErrInvalidInput
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	current, err := s.workerRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}
	if err := s.quota.AllowCreate(ctx, project.OwnerID, QuotaWorkersPerProject, current); err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		ProjectID:                  projectID,
		Role:                       req.Role,
		Count:                      req.Count,
		Rate:                       req.Rate,
		RateType:                   req.RateType,
		SpecialEquipmentCostPerDay: req.SpecialEquipmentCostPerDay,
	}

	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	created, err := s.workerRepo.GetByID(ctx, worker.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload worker: %w", err)
	}

	s.logger.Info("worker created",
		zap.String("worker_id", worker.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("role", string(req.Role)))

	dto := mapper.ToWorkerDTO(created)
	return &dto, nil
}

func (s *WorkerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkerDTO, error) {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}

	dto := mapper.ToWorkerDTO(worker)
	return &dto, nil
}

func (s *WorkerService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.WorkerDTO, error) {
	workers, err := s.workerRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	dtos := make([]domain.WorkerDTO, len(workers))
	for i := range workers {
		dtos[i] = mapper.ToWorkerDTO(&workers[i])
	}
	return dtos, nil
}

func (s *WorkerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateWorkerRequest) (*domain.WorkerDTO, error) {
	if !req.Role.IsValid() || !req.RateType.IsValid() {
		return nil, ErrInvalidInput
	}

	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}

	worker.Role = req.Role
	worker.Count = req.Count
	worker.Rate = req.Rate
	worker.RateType = req.RateType
	worker.SpecialEquipmentCostPerDay = req.SpecialEquipmentCostPerDay

	if err := s.workerRepo.Update(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, worker.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	reloaded, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload worker: %w", err)
	}

	dto := mapper.ToWorkerDTO(reloaded)
	return &dto, nil
}

func (s *WorkerService) Delete(ctx context.Context, id uuid.UUID) error {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to get worker: %w", err)
	}

	if err := s.workerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, worker.ProjectID); err != nil {
		return fmt.Errorf("failed to recompute project: %w", err)
	}

	s.logger.Info("worker deleted",
		zap.String("worker_id", id.String()),
		zap.String("project_id", worker.ProjectID.String()))
	return nil
}

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

// ProjectService handles business logic for projects. Every mutation that
// can change a derived value ends with a full recompute of the project.
type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	materialRepo *repository.MaterialRepository
	engine       *engine.Engine
	quota        QuotaGate
	logger       *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	materialRepo *repository.MaterialRepository,
	eng *engine.Engine,
	quota QuotaGate,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		engine:       eng,
		quota:        quota,
		logger:       logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	if !req.ProjectType.IsValid() || !req.MeasurementUnit.IsValid() || !req.ProfitType.IsValid() {
		return nil, ErrInvalidInput
	}

	current, err := s.projectRepo.CountByOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if err := s.quota.AllowCreate(ctx, req.OwnerID, QuotaProjects, current); err != nil {
		return nil, err
	}

	project := &domain.Project{
		OwnerID:           req.OwnerID,
		Name:              req.Name,
		ProjectType:       req.ProjectType,
		MeasurementUnit:   req.MeasurementUnit,
		WastagePercentage: req.WastagePercentage,
		MortarThickness:   req.MortarThickness,
		ProfitType:        req.ProfitType,
		ProfitValue:       req.ProfitValue,
		Transport:         req.Transport,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	recomputed, err := s.engine.Recompute(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", req.OwnerID.String()),
		zap.String("project_type", string(req.ProjectType)))

	dto := mapper.ToProjectDTO(recomputed)
	return &dto, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetWithGraph(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, ownerID *uuid.UUID, projectType *domain.ProjectType) (*domain.PaginatedResponse, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, ownerID, projectType)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *ProjectService) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]domain.ProjectDTO, error) {
	projects, err := s.projectRepo.Search(ctx, ownerID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}
	return dtos, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	if !req.ProjectType.IsValid() || !req.MeasurementUnit.IsValid() || !req.ProfitType.IsValid() {
		return nil, ErrInvalidInput
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Name = req.Name
	project.ProjectType = req.ProjectType
	project.MeasurementUnit = req.MeasurementUnit
	project.WastagePercentage = req.WastagePercentage
	project.MortarThickness = req.MortarThickness
	project.ProfitType = req.ProfitType
	project.ProfitValue = req.ProfitValue
	project.Transport = req.Transport

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	recomputed, err := s.engine.Recompute(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	dto := mapper.ToProjectDTO(recomputed)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted", zap.String("project_id", id.String()))
	return nil
}

// Recompute reruns the estimation pipeline on demand and returns the fresh
// graph. Used by the explicit recompute endpoint and the drift sweep job.
func (s *ProjectService) Recompute(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.engine.Recompute(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// Preview runs the pipeline on an in-memory draft without persisting
// anything. Material names resolve against the caller's catalogue; names
// with no catalogue entry still participate with a zero price.
func (s *ProjectService) Preview(ctx context.Context, req *domain.PreviewProjectRequest) (*domain.ProjectDTO, error) {
	if !req.ProjectType.IsValid() || !req.MeasurementUnit.IsValid() || !req.ProfitType.IsValid() {
		return nil, ErrInvalidInput
	}

	draft := &domain.Project{
		OwnerID:           req.OwnerID,
		Name:              "preview",
		ProjectType:       req.ProjectType,
		MeasurementUnit:   req.MeasurementUnit,
		WastagePercentage: req.WastagePercentage,
		MortarThickness:   req.MortarThickness,
		ProfitType:        req.ProfitType,
		ProfitValue:       req.ProfitValue,
		Transport:         req.Transport,
	}

	for _, roomReq := range req.Rooms {
		draft.Rooms = append(draft.Rooms, roomFromRequest(&roomReq))
	}

	for _, name := range req.MaterialNames {
		material, err := s.materialRepo.LookupByName(ctx, req.OwnerID, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			material = &domain.Material{Name: name, Unit: "unit"}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up material %q: %w", name, err)
		}
		draft.ProjectMaterials = append(draft.ProjectMaterials, domain.ProjectMaterial{
			MaterialID: material.ID,
			Material:   material,
			Unit:       material.Unit,
			UnitPrice:  material.DefaultUnitPrice,
		})
	}

	for _, workerReq := range req.Workers {
		if !workerReq.Role.IsValid() || !workerReq.RateType.IsValid() {
			return nil, ErrInvalidInput
		}
		draft.Workers = append(draft.Workers, domain.Worker{
			Role:                       workerReq.Role,
			Count:                      workerReq.Count,
			Rate:                       workerReq.Rate,
			RateType:                   workerReq.RateType,
			SpecialEquipmentCostPerDay: workerReq.SpecialEquipmentCostPerDay,
		})
	}

	previewed, err := s.engine.Preview(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to preview project: %w", err)
	}

	dto := mapper.ToProjectDTO(previewed)
	return &dto, nil
}

// roomFromRequest builds an unpersisted room graph node from a create
// request. Shared with RoomService for the persisted path.
func roomFromRequest(req *domain.CreateRoomRequest) domain.Room {
	room := domain.Room{
		Name:     req.Name,
		RoomType: req.RoomType,
		Length:   req.Length,
		Breadth:  req.Breadth,
		Height:   req.Height,
	}
	if room.RoomType == "" {
		room.RoomType = domain.RoomTypeOther
	}
	if req.TilingDetails != nil {
		room.TilingDetails = &domain.TilingRoomDetails{
			StairLength:      req.TilingDetails.StairLength,
			StairBreadth:     req.TilingDetails.StairBreadth,
			NumberOfSteps:    req.TilingDetails.NumberOfSteps,
			LandingLength:    req.TilingDetails.LandingLength,
			LandingBreadth:   req.TilingDetails.LandingBreadth,
			NumberOfLandings: req.TilingDetails.NumberOfLandings,
			HasMetalStrip:    req.TilingDetails.HasMetalStrip,
		}
	}
	if req.PaintingDetails != nil {
		coats := req.PaintingDetails.NumPaintCoats
		if coats < 1 {
			coats = 1
		}
		surface := req.PaintingDetails.SurfaceType
		if surface == "" {
			surface = domain.SurfaceSmooth
		}
		room.PaintingDetails = &domain.PaintingRoomDetails{
			DoorCount:     req.PaintingDetails.DoorCount,
			DoorArea:      req.PaintingDetails.DoorArea,
			WindowCount:   req.PaintingDetails.WindowCount,
			WindowArea:    req.PaintingDetails.WindowArea,
			NumPaintCoats: coats,
			SurfaceType:   surface,
		}
	}
	return room
}

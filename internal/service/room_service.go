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

// RoomService handles business logic for rooms. Room geometry drives every
// downstream number, so all mutations end with a project recompute.
type RoomService struct {
	roomRepo    *repository.RoomRepository
	projectRepo *repository.ProjectRepository
	engine      *engine.Engine
	quota       QuotaGate
	logger      *zap.Logger
}

// NewRoomService creates a new RoomService
func NewRoomService(
	roomRepo *repository.RoomRepository,
	projectRepo *repository.ProjectRepository,
	eng *engine.Engine,
	quota QuotaGate,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		projectRepo: projectRepo,
		engine:      eng,
		quota:       quota,
		logger:      logger,
	}
}

func (s *RoomService) Create(ctx context.Context, projectID uuid.UUID, req *domain.CreateRoomRequest) (*domain.RoomDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	current, err := s.roomRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	if err := s.quota.AllowCreate(ctx, project.OwnerID, QuotaRoomsPerProject, current); err != nil {
		return nil, err
	}

	room := roomFromRequest(req)
	room.ProjectID = projectID

	if err := s.roomRepo.Create(ctx, &room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	created, err := s.roomRepo.GetByID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload room: %w", err)
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID.String()),
		zap.String("project_id", projectID.String()))

	dto := mapper.ToRoomDTO(created)
	return &dto, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoomDTO, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	dto := mapper.ToRoomDTO(room)
	return &dto, nil
}

func (s *RoomService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.RoomDTO, error) {
	rooms, err := s.roomRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	dtos := make([]domain.RoomDTO, len(rooms))
	for i := range rooms {
		dtos[i] = mapper.ToRoomDTO(&rooms[i])
	}
	return dtos, nil
}

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateRoomRequest) (*domain.RoomDTO, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	createReq := domain.CreateRoomRequest(*req)
	updated := roomFromRequest(&createReq)
	updated.BaseModel = room.BaseModel
	updated.ProjectID = room.ProjectID

	if err := s.roomRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, room.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to recompute project: %w", err)
	}

	reloaded, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload room: %w", err)
	}

	dto := mapper.ToRoomDTO(reloaded)
	return &dto, nil
}

func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if _, err := s.engine.Recompute(ctx, room.ProjectID); err != nil {
		return fmt.Errorf("failed to recompute project: %w", err)
	}

	s.logger.Info("room deleted",
		zap.String("room_id", id.String()),
		zap.String("project_id", room.ProjectID.String()))
	return nil
}

package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetWithGraph loads a project with rooms, details, material selections
// and workers, as last persisted by the engine.
func (r *ProjectRepository) GetWithGraph(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Rooms.TilingDetails").
		Preload("Rooms.PaintingDetails").
		Preload("ProjectMaterials.Material").
		Preload("Workers").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Rooms", "ProjectMaterials", "Workers").
		Delete(&domain.Project{BaseModel: domain.BaseModel{ID: id}}).Error
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, ownerID *uuid.UUID, projectType *domain.ProjectType) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}
	if projectType != nil {
		query = query.Where("project_type = ?", *projectType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ProjectRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// ListUpdatedSince returns ids of projects whose graph changed after the
// given instant, oldest first. The recompute sweep job feeds on it.
func (r *ProjectRepository) ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("updated_at >= ?", since).
		Order("updated_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ProjectRepository) Search(ctx context.Context, ownerID uuid.UUID, searchQuery string, limit int) ([]domain.Project, error) {
	var projects []domain.Project
	pattern := "%" + strings.ToLower(searchQuery) + "%"
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(name) LIKE ?", ownerID, pattern).
		Limit(limit).Find(&projects).Error
	return projects, err
}

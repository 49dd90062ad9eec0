package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type ProjectMaterialRepository struct {
	db *gorm.DB
}

func NewProjectMaterialRepository(db *gorm.DB) *ProjectMaterialRepository {
	return &ProjectMaterialRepository{db: db}
}

func (r *ProjectMaterialRepository) Create(ctx context.Context, pm *domain.ProjectMaterial) error {
	return r.db.WithContext(ctx).Create(pm).Error
}

func (r *ProjectMaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectMaterial, error) {
	var pm domain.ProjectMaterial
	err := r.db.WithContext(ctx).
		Preload("Material").
		First(&pm, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

// GetByProjectAndMaterial returns the selection row for a material within a
// project, or gorm.ErrRecordNotFound when the material is not selected.
func (r *ProjectMaterialRepository) GetByProjectAndMaterial(ctx context.Context, projectID, materialID uuid.UUID) (*domain.ProjectMaterial, error) {
	var pm domain.ProjectMaterial
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND material_id = ?", projectID, materialID).
		First(&pm).Error
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *ProjectMaterialRepository) Update(ctx context.Context, pm *domain.ProjectMaterial) error {
	return r.db.WithContext(ctx).Save(pm).Error
}

func (r *ProjectMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectMaterial{}, "id = ?", id).Error
}

func (r *ProjectMaterialRepository) CountByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectMaterial{}).
		Where("material_id = ?", materialID).
		Count(&count).Error
	return count, err
}

func (r *ProjectMaterialRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectMaterial{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *ProjectMaterialRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMaterial, error) {
	var pms []domain.ProjectMaterial
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&pms).Error
	if err != nil {
		return nil, err
	}
	return pms, nil
}

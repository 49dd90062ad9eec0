package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *WorkerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.db.WithContext(ctx).First(&worker, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *WorkerRepository) Update(ctx context.Context, worker *domain.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

func (r *WorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Worker{}, "id = ?", id).Error
}

func (r *WorkerRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Worker{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *WorkerRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Worker, error) {
	var workers []domain.Worker
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, material *domain.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	var material domain.Material
	err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) Update(ctx context.Context, material *domain.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Material{}, "id = ?", id).Error
}

// List returns the owner's materials plus the global catalogue.
func (r *MaterialRepository) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Material, error) {
	var materials []domain.Material
	err := r.db.WithContext(ctx).
		Where("owner_id = ? OR owner_id IS NULL", ownerID).
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}

// CountByOwner counts the owner's own catalogue entries, excluding the
// global set.
func (r *MaterialRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Material{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// LookupByName finds a material by name in the owner's scope, preferring a
// per-user entry over a global one with the same name.
func (r *MaterialRepository) LookupByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Material, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	var material domain.Material
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND owner_id = ?", needle, ownerID).
		First(&material).Error
	if err == nil {
		return &material, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND owner_id IS NULL", needle).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

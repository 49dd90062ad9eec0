package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type UserSettingsRepository struct {
	db *gorm.DB
}

func NewUserSettingsRepository(db *gorm.DB) *UserSettingsRepository {
	return &UserSettingsRepository{db: db}
}

// GetOrCreate returns the settings row for an owner, creating it with
// defaults on first access.
func (r *UserSettingsRepository) GetOrCreate(ctx context.Context, ownerID uuid.UUID) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	err := r.db.WithContext(ctx).First(&settings, "owner_id = ?", ownerID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = domain.DefaultUserSettings(ownerID)
	if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *UserSettingsRepository) Update(ctx context.Context, settings *domain.UserSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

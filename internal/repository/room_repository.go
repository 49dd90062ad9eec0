package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a room together with its detail variant, if any.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Preload("TilingDetails").
		Preload("PaintingDetails").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update saves the room and replaces its detail rows so a variant switch
// does not leave orphans behind.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", room.ID).Delete(&domain.TilingRoomDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&domain.PaintingRoomDetails{}).Error; err != nil {
			return err
		}
		if room.TilingDetails != nil {
			room.TilingDetails.ID = uuid.Nil
			room.TilingDetails.RoomID = room.ID
		}
		if room.PaintingDetails != nil {
			room.PaintingDetails.ID = uuid.Nil
			room.PaintingDetails.RoomID = room.ID
		}
		return tx.Save(room).Error
	})
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("TilingDetails", "PaintingDetails").
		Delete(&domain.Room{BaseModel: domain.BaseModel{ID: id}}).Error
}

func (r *RoomRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *RoomRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Preload("TilingDetails").
		Preload("PaintingDetails").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rooms).Error
	return rooms, err
}

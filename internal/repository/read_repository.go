package repository

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/models"
	"gorm.io/gorm"
)

type ReadRepository struct {
	db *gorm.DB
}

func NewReadRepository(db *gorm.DB) *ReadRepository {
	return &ReadRepository{db: db}
}

func (r *ReadRepository) Create(ctx context.Context, read *models.Read) error {
	return r.db.WithContext(ctx).Create(read).Error
}

func (r *ReadRepository) FindByID(ctx context.Context, id string) (*models.Read, error) {
	var read models.Read
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&read).Error; err != nil {
		return nil, err
	}
	return &read, nil
}

func (r *ReadRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Read, error) {
	reads := []models.Read{}
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&reads).Error
	return reads, err
}

func (r *ReadRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Read, error) {
	var read models.Read
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateExisting(tx, &models.Read{}, id, fields); err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&read).Error
	})
	if err != nil {
		return nil, err
	}
	return &read, nil
}

func (r *ReadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Read{}).Error
}

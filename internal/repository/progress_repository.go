package repository

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Get(ctx context.Context, userID, readID string) (*models.Progress, error) {
	var progress models.Progress
	err := r.db.WithContext(ctx).Where("id = ?", models.ProgressID(userID, readID)).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert inserts or overwrites the (owner, read) row in a single
// INSERT ... ON CONFLICT statement and returns the stored row.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *models.Progress) (*models.Progress, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "updated_at"}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	var stored models.Progress
	if err := r.db.WithContext(ctx).Where("id = ?", progress.ID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

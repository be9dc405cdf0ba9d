package repository

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByReadUpToProgress serves from idx_messages_read_progress: equality on
// read_id, range on progress, newest offset first.
func (r *MessageRepository) ListByReadUpToProgress(ctx context.Context, readID string, maxProgress float64) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.WithContext(ctx).
		Where("read_id = ? AND progress <= ?", readID, maxProgress).
		Order("progress DESC").
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{}).Error
}

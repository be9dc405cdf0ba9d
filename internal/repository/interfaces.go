package repository

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/models"
)

// Lookups of absent keys and conditional writes against absent keys return
// gorm.ErrRecordNotFound.

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// GroupRepositoryInterface defines the contract for group repository operations
type GroupRepositoryInterface interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id string) (*models.Group, error)
	ListForUser(ctx context.Context, userID string) ([]models.Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Group, error)
	Delete(ctx context.Context, id string) error
}

// ReadRepositoryInterface defines the contract for read repository operations
type ReadRepositoryInterface interface {
	Create(ctx context.Context, read *models.Read) error
	FindByID(ctx context.Context, id string) (*models.Read, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Read, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Read, error)
	Delete(ctx context.Context, id string) error
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id string) (*models.Message, error)
	ListByReadUpToProgress(ctx context.Context, readID string, maxProgress float64) ([]models.Message, error)
	Delete(ctx context.Context, id string) error
}

// ProgressRepositoryInterface defines the contract for progress repository operations
type ProgressRepositoryInterface interface {
	Get(ctx context.Context, userID, readID string) (*models.Progress, error)
	Upsert(ctx context.Context, progress *models.Progress) (*models.Progress, error)
}

package repository

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts the group together with its seeded member rows.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Preload("Members").Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	groups := []models.Group{}
	memberOf := r.db.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("id IN (?)", memberOf).
		Preload("Members").
		Order("created_at ASC").
		Find(&groups).Error
	return groups, err
}

// AddMember adds userID to the member set of an existing group. Adding a
// current member changes nothing.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		member := models.GroupMember{GroupID: groupID, UserID: userID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
	})
}

func (r *GroupRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateExisting(tx, &models.Group{}, id, fields); err != nil {
			return err
		}
		return tx.Preload("Members").Where("id = ?", id).First(&group).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes the group and its member set. Reads and messages of the
// group are left in place.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Group{}).Error
	})
}

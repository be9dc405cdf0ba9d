package models

import (
	"time"
)

// Progress tracks how far a user has read. There is exactly one row per
// (user, read) pair, keyed by ProgressID.
type Progress struct {
	ID        string    `gorm:"primaryKey;type:varchar(80)" json:"id"`
	Owner     string    `gorm:"type:varchar(36);not null;index" json:"owner"`
	Read      string    `gorm:"column:read_id;type:varchar(36);not null;index" json:"read"`
	Progress  float64   `gorm:"not null;default:0" json:"progress"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Progress) TableName() string {
	return "progress"
}

func ProgressID(userID, readID string) string {
	return userID + "-" + readID
}

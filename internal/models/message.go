package models

import (
	"time"
)

type Message struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner     string `gorm:"type:varchar(36);not null;index" json:"owner"`
	OwnerName string `gorm:"size:255" json:"ownerName"` // denormalized author username
	Read      string `gorm:"column:read_id;type:varchar(36);not null;index:idx_messages_read_progress,priority:1" json:"read"`

	// Progress is the reader offset the message was written at. Readers only
	// see messages at or below their own progress on the read.
	Progress float64 `gorm:"not null;default:0;index:idx_messages_read_progress,priority:2" json:"progress"`
	Content  string  `gorm:"type:text;not null" json:"content"`
}

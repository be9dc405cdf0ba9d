package models

import "time"

// Read is a document attached to exactly one group. Group is never changed
// after creation.
type Read struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id" msgpack:"id"`
	Group       string    `gorm:"column:group_id;type:varchar(36);not null;index:idx_reads_group" json:"group" msgpack:"group"`
	Name        string    `gorm:"size:255;not null" json:"name" msgpack:"name"`
	ContentType string    `gorm:"size:127" json:"contentType,omitempty" msgpack:"content_type"`
	HasContent  bool      `gorm:"default:false" json:"hasContent" msgpack:"has_content"`
	CreatedAt   time.Time `json:"createdAt" msgpack:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" msgpack:"updated_at"`
}

package models

import (
	"time"
)

type Group struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Owner string `gorm:"type:varchar(36);not null;index" json:"owner"`

	// Associations
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
}

// GroupMember is one element of a group's member set. The composite primary
// key makes adding an existing member a no-op.
type GroupMember struct {
	GroupID  string    `gorm:"primaryKey;type:varchar(36)" json:"groupId"`
	UserID   string    `gorm:"primaryKey;type:varchar(36);index:idx_group_members_user" json:"userId"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Group) MemberIDs() []string {
	ids := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (g *Group) ToResponse() GroupResponse {
	return GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Owner:     g.Owner,
		Members:   g.MemberIDs(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

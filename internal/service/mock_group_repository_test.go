package service

import (
	"context"
	"sort"

	"github.com/noteduco342/readgroup-backend/internal/models"
	"gorm.io/gorm"
)

// MockGroupRepository is a mock implementation for tests
// It implements repository.GroupRepositoryInterface.
type MockGroupRepository struct {
	groups map[string]*models.Group
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{
		groups: make(map[string]*models.Group),
	}
}

func (m *MockGroupRepository) Create(_ context.Context, group *models.Group) error {
	stored := *group
	stored.Members = append([]models.GroupMember(nil), group.Members...)
	m.groups[group.ID] = &stored
	return nil
}

func (m *MockGroupRepository) FindByID(_ context.Context, id string) (*models.Group, error) {
	if g, ok := m.groups[id]; ok {
		out := *g
		out.Members = append([]models.GroupMember(nil), g.Members...)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGroupRepository) ListForUser(_ context.Context, userID string) ([]models.Group, error) {
	out := []models.Group{}
	for _, g := range m.groups {
		if g.HasMember(userID) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockGroupRepository) AddMember(_ context.Context, groupID, userID string) error {
	g, ok := m.groups[groupID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if !g.HasMember(userID) {
		g.Members = append(g.Members, models.GroupMember{GroupID: groupID, UserID: userID})
	}
	return nil
}

func (m *MockGroupRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if name, ok := fields["name"].(string); ok {
		g.Name = name
	}
	return m.FindByID(ctx, id)
}

func (m *MockGroupRepository) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

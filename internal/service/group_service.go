package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/validation"
)

type GroupService struct {
	groupRepo repository.GroupRepositoryInterface
	publisher events.Publisher
}

func NewGroupService(groupRepo repository.GroupRepositoryInterface, publisher events.Publisher) *GroupService {
	return &GroupService{groupRepo: groupRepo, publisher: publisher}
}

// UpdateGroupInput lists the patchable group fields. Owner and members are
// never taken from a client.
type UpdateGroupInput struct {
	Name *string `json:"name"`
}

func (in UpdateGroupInput) Empty() bool {
	return in.Name == nil
}

func (s *GroupService) GetByID(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return group, nil
}

func (s *GroupService) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.groupRepo.ListForUser(ctx, userID)
}

// Create makes owner the group's owner and its first member.
func (s *GroupService) Create(ctx context.Context, name *string, owner *models.Identity) (*models.Group, error) {
	if name == nil || validation.NormalizeName(*name) == "" {
		return nil, invalid("Please provide a name!")
	}
	if owner == nil || owner.ID == "" {
		return nil, ErrUnauthenticated
	}

	id := uuid.NewString()
	group := &models.Group{
		ID:      id,
		Name:    validation.NormalizeName(*name),
		Owner:   owner.ID,
		Members: []models.GroupMember{{GroupID: id, UserID: owner.ID}},
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.TopicGroups, group.ID,
		events.New(events.TypeGroupCreated, group.ID, owner.ID).With("name", group.Name))
	return group, nil
}

// Join adds userID to the group's members. Joining twice is a no-op.
func (s *GroupService) Join(ctx context.Context, groupID, userID string) (*models.Group, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		return nil, notFound(err)
	}
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, notFound(err)
	}

	publish(ctx, s.publisher, events.TopicGroups, group.ID,
		events.New(events.TypeGroupJoined, group.ID, userID))
	return group, nil
}

func (s *GroupService) Update(ctx context.Context, groupID string, input UpdateGroupInput) (*models.Group, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		name := validation.NormalizeName(*input.Name)
		if name == "" {
			return nil, invalid("Name cannot be empty.")
		}
		fields["name"] = name
	}

	group, err := s.groupRepo.Update(ctx, groupID, fields)
	if err != nil {
		return nil, notFound(err)
	}
	return group, nil
}

// Delete removes the group and its membership. Its reads and messages stay.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	return s.groupRepo.Delete(ctx, groupID)
}

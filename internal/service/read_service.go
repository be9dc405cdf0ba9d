package service

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/cache"
	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/logging"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/storage"
	"github.com/noteduco342/readgroup-backend/internal/validation"
)

const defaultContentType = "application/octet-stream"

type ReadService struct {
	readRepo  repository.ReadRepositoryInterface
	groupRepo repository.GroupRepositoryInterface
	readCache *cache.ReadCache
	documents storage.DocumentStore
	publisher events.Publisher
}

// NewReadService wires the read registry. readCache and documents may be nil:
// lists are then always loaded from the database and content operations
// fail with ErrStorageUnavailable.
func NewReadService(
	readRepo repository.ReadRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	readCache *cache.ReadCache,
	documents storage.DocumentStore,
	publisher events.Publisher,
) *ReadService {
	return &ReadService{
		readRepo:  readRepo,
		groupRepo: groupRepo,
		readCache: readCache,
		documents: documents,
		publisher: publisher,
	}
}

type CreateReadInput struct {
	Name  *string `json:"name"`
	Group *string `json:"group"`
}

func (s *ReadService) Create(ctx context.Context, input CreateReadInput, requesterID string) (*models.Read, error) {
	if input.Name == nil || validation.NormalizeName(*input.Name) == "" {
		return nil, invalid("Please provide a name!")
	}
	if input.Group == nil || *input.Group == "" {
		return nil, invalid("Please provide a group!")
	}

	group, err := s.groupRepo.FindByID(ctx, *input.Group)
	if err != nil {
		return nil, notFound(err)
	}
	if !IsGroupOwner(group, requesterID) {
		return nil, ErrForbidden
	}

	read := &models.Read{
		ID:    uuid.NewString(),
		Group: group.ID,
		Name:  validation.NormalizeName(*input.Name),
	}
	if err := s.readRepo.Create(ctx, read); err != nil {
		return nil, err
	}
	s.invalidate(ctx, read.Group)

	publish(ctx, s.publisher, events.TopicReads, read.ID,
		events.New(events.TypeReadCreated, read.ID, requesterID).With("group", read.Group))
	return read, nil
}

func (s *ReadService) GetByID(ctx context.Context, id string) (*models.Read, error) {
	read, err := s.readRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return read, nil
}

func (s *ReadService) ListByGroup(ctx context.Context, groupID string) ([]models.Read, error) {
	if reads, ok := s.readCache.GetGroupReads(ctx, groupID); ok {
		return reads, nil
	}

	reads, err := s.readRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.readCache.SetGroupReads(ctx, groupID, reads); err != nil {
		logging.FromContext(ctx).Warn("cache read list failed", "group", groupID, "error", err)
	}
	return reads, nil
}

// Delete removes a read on behalf of the owner of its group.
func (s *ReadService) Delete(ctx context.Context, id, requesterID string) error {
	read, _, err := s.loadOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.readRepo.Delete(ctx, read.ID); err != nil {
		return err
	}
	s.invalidate(ctx, read.Group)

	if read.HasContent && s.documents != nil {
		if key, err := storage.ReadObjectKey(read.ID); err == nil {
			if err := s.documents.DeleteObject(ctx, key); err != nil {
				logging.FromContext(ctx).Warn("delete read content failed", "read", read.ID, "error", err)
			}
		}
	}

	publish(ctx, s.publisher, events.TopicReads, read.ID,
		events.New(events.TypeReadDeleted, read.ID, requesterID).With("group", read.Group))
	return nil
}

// PutContent stores the document body of a read. Only the group owner may
// upload; a second upload replaces the first.
func (s *ReadService) PutContent(ctx context.Context, id, requesterID string, body io.Reader, size int64, contentType string) (*models.Read, error) {
	if s.documents == nil {
		return nil, ErrStorageUnavailable
	}
	read, _, err := s.loadOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	key, err := storage.ReadObjectKey(read.ID)
	if err != nil {
		return nil, invalid(err.Error())
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	if _, err := s.documents.PutObject(ctx, key, body, size, contentType); err != nil {
		return nil, err
	}

	updated, err := s.readRepo.Update(ctx, read.ID, map[string]interface{}{
		"has_content":  true,
		"content_type": contentType,
	})
	if err != nil {
		return nil, notFound(err)
	}
	s.invalidate(ctx, read.Group)
	return updated, nil
}

// GetContent opens the document body of a read. The caller closes it.
func (s *ReadService) GetContent(ctx context.Context, id string) (io.ReadCloser, storage.ObjectStat, error) {
	if s.documents == nil {
		return nil, storage.ObjectStat{}, ErrStorageUnavailable
	}
	read, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, storage.ObjectStat{}, err
	}
	if !read.HasContent {
		return nil, storage.ObjectStat{}, ErrNotFound
	}
	key, err := storage.ReadObjectKey(read.ID)
	if err != nil {
		return nil, storage.ObjectStat{}, invalid(err.Error())
	}
	return s.documents.GetObject(ctx, key)
}

func (s *ReadService) loadOwned(ctx context.Context, id, requesterID string) (*models.Read, *models.Group, error) {
	read, err := s.readRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err)
	}
	group, err := s.groupRepo.FindByID(ctx, read.Group)
	if err != nil {
		return nil, nil, notFound(err)
	}
	if !IsGroupOwner(group, requesterID) {
		return nil, nil, ErrForbidden
	}
	return read, group, nil
}

func (s *ReadService) invalidate(ctx context.Context, groupID string) {
	if err := s.readCache.InvalidateGroup(ctx, groupID); err != nil {
		logging.FromContext(ctx).Warn("invalidate read list failed", "group", groupID, "error", err)
	}
}

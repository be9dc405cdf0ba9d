package service

import (
	"context"
	"strconv"

	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/validation"
)

type ProgressService struct {
	progressRepo repository.ProgressRepositoryInterface
	publisher    events.Publisher
}

func NewProgressService(progressRepo repository.ProgressRepositoryInterface, publisher events.Publisher) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, publisher: publisher}
}

type UpsertProgressInput struct {
	Progress *float64 `json:"progress"`
	Read     *string  `json:"read"`
}

// GetByUserAndRead fails with ErrNotFound when the user has no progress on
// the read yet.
func (s *ProgressService) GetByUserAndRead(ctx context.Context, userID, readID string) (*models.Progress, error) {
	progress, err := s.progressRepo.Get(ctx, userID, readID)
	if err != nil {
		return nil, notFound(err)
	}
	return progress, nil
}

// Upsert records progress for (userID, read), creating the row on first use.
func (s *ProgressService) Upsert(ctx context.Context, userID string, input UpsertProgressInput) (*models.Progress, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if input.Progress == nil {
		return nil, invalid("Please provide a progress!")
	}
	if !validation.ValidProgress(*input.Progress) {
		return nil, invalid("Progress must be a non-negative number.")
	}
	if input.Read == nil || *input.Read == "" {
		return nil, invalid("Please provide a read!")
	}

	stored, err := s.progressRepo.Upsert(ctx, &models.Progress{
		ID:       models.ProgressID(userID, *input.Read),
		Owner:    userID,
		Read:     *input.Read,
		Progress: *input.Progress,
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.TopicReads, stored.Read,
		events.New(events.TypeProgressUpdated, stored.ID, userID).
			With("read", stored.Read).
			With("progress", strconv.FormatFloat(stored.Progress, 'f', -1, 64)))
	return stored, nil
}

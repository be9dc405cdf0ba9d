package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/validation"
	"gorm.io/gorm"
)

const missingMessageFields = "Missing content, progress, or read."

type MessageService struct {
	messageRepo  repository.MessageRepositoryInterface
	progressRepo repository.ProgressRepositoryInterface
	publisher    events.Publisher
}

func NewMessageService(
	messageRepo repository.MessageRepositoryInterface,
	progressRepo repository.ProgressRepositoryInterface,
	publisher events.Publisher,
) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		progressRepo: progressRepo,
		publisher:    publisher,
	}
}

type CreateMessageInput struct {
	Content  *string  `json:"content"`
	Progress *float64 `json:"progress"`
	Read     *string  `json:"read"`
}

func (s *MessageService) Create(ctx context.Context, input CreateMessageInput, author *models.Identity) (*models.Message, error) {
	if author == nil || author.ID == "" {
		return nil, ErrUnauthenticated
	}
	if input.Content == nil || input.Progress == nil || input.Read == nil || *input.Read == "" {
		return nil, invalid(missingMessageFields)
	}
	content := validation.TrimAndLimit(*input.Content, validation.MaxMessageLength())
	if content == "" {
		return nil, invalid(missingMessageFields)
	}
	if !validation.ValidProgress(*input.Progress) {
		return nil, invalid("Progress must be a non-negative number.")
	}

	message := &models.Message{
		ID:        uuid.NewString(),
		Owner:     author.ID,
		OwnerName: author.Username,
		Read:      *input.Read,
		Progress:  *input.Progress,
		Content:   content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.TopicMessages, message.ID,
		events.New(events.TypeMessageCreated, message.ID, author.ID).
			With("read", message.Read).
			With("progress", strconv.FormatFloat(message.Progress, 'f', -1, 64)))
	return message, nil
}

// ListByReadUpToProgress returns the messages on readID that requesterID has
// read past, newest offset first. A reader without progress sees offset 0.
func (s *MessageService) ListByReadUpToProgress(ctx context.Context, readID, requesterID string) ([]models.Message, error) {
	limit := 0.0
	progress, err := s.progressRepo.Get(ctx, requesterID, readID)
	switch {
	case err == nil:
		limit = progress.Progress
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}
	return s.messageRepo.ListByReadUpToProgress(ctx, readID, limit)
}

func (s *MessageService) Delete(ctx context.Context, id, requesterID string) error {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if !IsMessageOwner(message, requesterID) {
		return ErrForbidden
	}
	return s.messageRepo.Delete(ctx, id)
}

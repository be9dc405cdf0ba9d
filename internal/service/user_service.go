package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo  repository.UserRepositoryInterface
	publisher events.Publisher
}

func NewUserService(userRepo repository.UserRepositoryInterface, publisher events.Publisher) *UserService {
	return &UserService{userRepo: userRepo, publisher: publisher}
}

type CreateUserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// UpdateUserInput lists the patchable user fields. Nil fields are left as is.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Create stores a new account. Usernames are not checked for uniqueness.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Username == nil || validation.NormalizeUsername(*input.Username) == "" {
		return nil, invalid("Please provide a username!")
	}
	if input.Password == nil || *input.Password == "" {
		return nil, invalid("Please provide a password!")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     validation.NormalizeUsername(*input.Username),
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.TopicUsers, user.ID,
		events.New(events.TypeUserCreated, user.ID, user.ID).With("username", user.Username))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if input.Username != nil {
		username := validation.NormalizeUsername(*input.Username)
		if username == "" {
			return nil, invalid("Username cannot be empty.")
		}
		fields["username"] = username
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, invalid("Password cannot be empty.")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = string(hashedPassword)
	}

	user, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Delete removes the account only. Groups and messages it owns are kept.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

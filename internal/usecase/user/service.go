package user

import (
	"context"
	"fmt"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/user-management-backend/internal/domain"
	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/auth"
)

// Service orchestrates the user operations. Create re-checks the policy the
// repository enforces so a request is rejected before any write is attempted.
type Service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCreationFailed, err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	if !auth.ValidateStrength(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	user, err := s.userRepo.Create(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCreationFailed, err)
	}

	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login returns nil without an error when the credentials do not match.
func (s *Service) Login(ctx context.Context, input LoginInput) (*entity.User, error) {
	user, err := s.userRepo.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*entity.User, error) {
	user, err := s.userRepo.Update(ctx, id, entity.UpdateFields{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return deleted, nil
}

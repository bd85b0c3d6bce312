package services

import (
	"context"
	"fmt"

	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// UserService handles the user directory
type UserService struct {
	repo repositories.UserRepository
	tx   repositories.Transactor
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, tx repositories.Transactor) *UserService {
	return &UserService{repo: repo, tx: tx}
}

// UserUpdate carries the fields of a partial user update; nil leaves a field unchanged
type UserUpdate struct {
	Name  *string
	Email *string
}

// Create registers a new user
func (s *UserService) Create(ctx context.Context, name, email string) (*entities.User, error) {
	if isBlank(name) {
		return nil, apperrors.NewValidationError("name must not be blank")
	}
	if !validEmail(email) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("email %q is not valid", email))
	}

	user := &entities.User{Name: name, Email: email}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Int64("user_id", user.ID).Msg("User created")
	return user, nil
}

// Update merges the provided fields into an existing user
func (s *UserService) Update(ctx context.Context, id int64, update UserUpdate) (*entities.User, error) {
	if update.Name != nil && isBlank(*update.Name) {
		return nil, apperrors.NewValidationError("name must not be blank")
	}
	if update.Email != nil && !validEmail(*update.Email) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("email %q is not valid", *update.Email))
	}

	var user *entities.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Email != nil {
			user.Email = *update.Email
		}
		return s.repo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves every user
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repo.List(ctx)
}

// Delete removes a user. Deleting an unknown id succeeds.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	observability.LoggerFromContext(ctx).Info().Int64("user_id", id).Msg("User deleted")
	return nil
}

package repositories

import (
	"context"

	"github.com/shareit/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts the user and fills its generated ID
	Create(ctx context.Context, user *entities.User) error

	// Update overwrites name and email
	Update(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// List retrieves all users ordered by ID
	List(ctx context.Context) ([]*entities.User, error)

	// Delete removes the user; deleting an absent user is not an error
	Delete(ctx context.Context, id int64) error
}

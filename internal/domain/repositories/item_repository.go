package repositories

import (
	"context"

	"github.com/shareit/backend/internal/domain/entities"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entities.Item) error
	Update(ctx context.Context, item *entities.Item) error
	GetByID(ctx context.Context, id int64) (*entities.Item, error)

	// ListByOwner returns a page of the owner's items ordered by ID
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]*entities.Item, error)

	// Search matches text case-insensitively against name or description of available items
	Search(ctx context.Context, text string, page Page) ([]*entities.Item, error)

	// ListByRequestIDs returns every item fulfilling one of the given requests
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*entities.Item, error)
}

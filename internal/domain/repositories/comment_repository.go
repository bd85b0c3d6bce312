package repositories

import (
	"context"

	"github.com/shareit/backend/internal/domain/entities"
)

// CommentRepository defines the interface for comment data operations.
// Listings are ordered by creation time, oldest first, and carry the author name.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]*entities.Comment, error)
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*entities.Comment, error)
}

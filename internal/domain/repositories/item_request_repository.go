package repositories

import (
	"context"

	"github.com/shareit/backend/internal/domain/entities"
)

// ItemRequestRepository defines the interface for item request data operations.
// Listings are ordered newest first.
type ItemRequestRepository interface {
	Create(ctx context.Context, request *entities.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*entities.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*entities.ItemRequest, error)
	ListExcludingRequester(ctx context.Context, requesterID int64, page Page) ([]*entities.ItemRequest, error)
}

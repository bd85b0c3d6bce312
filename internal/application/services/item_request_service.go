package services

import (
	"context"
	"time"

	"github.com/shareit/backend/internal/application/loaders"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// ItemRequestService handles the item request board
type ItemRequestService struct {
	requests repositories.ItemRequestRepository
	users    repositories.UserRepository
	items    repositories.ItemRepository
	tx       repositories.Transactor
	now      Clock
}

// NewItemRequestService creates a new item request service
func NewItemRequestService(
	requests repositories.ItemRequestRepository,
	users repositories.UserRepository,
	items repositories.ItemRepository,
	tx repositories.Transactor,
) *ItemRequestService {
	return &ItemRequestService{
		requests: requests,
		users:    users,
		items:    items,
		tx:       tx,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (s *ItemRequestService) SetClock(clock Clock) {
	s.now = clock
}

// Create posts a new request for an item
func (s *ItemRequestService) Create(ctx context.Context, requesterID int64, description string) (*entities.ItemRequest, error) {
	if isBlank(description) {
		return nil, apperrors.NewValidationError("description must not be blank")
	}

	request := &entities.ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Items:       []*entities.Item{},
	}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, requesterID); err != nil {
			return err
		}
		request.Created = s.now()
		return s.requests.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Int64("request_id", request.ID).Msg("Item request posted")
	return request, nil
}

// ListByOwner returns the caller's own requests, newest first
func (s *ItemRequestService) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequester(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return requests, s.attachItems(ctx, requests)
}

// ListAllButOwner returns a page of everybody else's requests, newest first
func (s *ItemRequestService) ListAllButOwner(ctx context.Context, userID int64, from, size int) ([]*entities.ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListExcludingRequester(ctx, userID, repositories.PageOf(from, size))
	if err != nil {
		return nil, err
	}
	return requests, s.attachItems(ctx, requests)
}

// GetByID returns one request with the items listed in answer to it
func (s *ItemRequestService) GetByID(ctx context.Context, viewerID, requestID int64) (*entities.ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, []*entities.ItemRequest{request}); err != nil {
		return nil, err
	}
	return request, nil
}

// attachItems resolves fulfilling items for all requests with one batched lookup
func (s *ItemRequestService) attachItems(ctx context.Context, requests []*entities.ItemRequest) error {
	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}

	items, err := loaders.LoadFulfillingItems(ctx, s.items, ids)
	if err != nil {
		return err
	}
	for i, r := range requests {
		r.Items = items[i]
	}
	return nil
}

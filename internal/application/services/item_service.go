package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// ItemService handles the item catalog
type ItemService struct {
	items    repositories.ItemRepository
	users    repositories.UserRepository
	requests repositories.ItemRequestRepository
	bookings repositories.BookingRepository
	comments *CommentService
	tx       repositories.Transactor
	now      Clock
}

// NewItemService creates a new item service
func NewItemService(
	items repositories.ItemRepository,
	users repositories.UserRepository,
	requests repositories.ItemRequestRepository,
	bookings repositories.BookingRepository,
	comments *CommentService,
	tx repositories.Transactor,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		tx:       tx,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (s *ItemService) SetClock(clock Clock) {
	s.now = clock
}

// NewItem carries the fields of an item being listed
type NewItem struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// ItemUpdate carries the fields of a partial item update; nil leaves a field unchanged
type ItemUpdate struct {
	Name        *string
	Description *string
	Available   *bool
}

// Create lists a new item owned by ownerID
func (s *ItemService) Create(ctx context.Context, ownerID int64, in NewItem) (*entities.Item, error) {
	switch {
	case isBlank(in.Name):
		return nil, apperrors.NewValidationError("name must not be blank")
	case isBlank(in.Description):
		return nil, apperrors.NewValidationError("description must not be blank")
	case in.Available == nil:
		return nil, apperrors.NewValidationError("available must be set")
	}

	item := &entities.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, ownerID); err != nil {
			return err
		}
		if in.RequestID != nil {
			if _, err := s.requests.GetByID(ctx, *in.RequestID); err != nil {
				return err
			}
		}
		return s.items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("Item listed")
	return item, nil
}

// Update changes the provided fields of an item; only its owner may do so
func (s *ItemService) Update(ctx context.Context, itemID, ownerID int64, update ItemUpdate) (*entities.Item, error) {
	if update.Name != nil && isBlank(*update.Name) {
		return nil, apperrors.NewValidationError("name must not be blank")
	}
	if update.Description != nil && isBlank(*update.Description) {
		return nil, apperrors.NewValidationError("description must not be blank")
	}

	var item *entities.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.OwnerID != ownerID {
			return apperrors.NewForbiddenError(fmt.Sprintf("User with id = %d doesn't own item with id = %d", ownerID, itemID))
		}

		if update.Name != nil {
			item.Name = *update.Name
		}
		if update.Description != nil {
			item.Description = *update.Description
		}
		if update.Available != nil {
			item.Available = *update.Available
		}
		return s.items.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID returns an item with its comments. The owner also sees the
// last and next approved bookings.
func (s *ItemService) GetByID(ctx context.Context, requesterID, itemID int64) (*entities.Item, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Comments = comments
	if item.Comments == nil {
		item.Comments = []*entities.Comment{}
	}

	if item.OwnerID == requesterID {
		if err := s.attachBookings(ctx, item, s.now()); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// ListByOwner returns a page of the owner's items, each enriched as in the owner's GetByID
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*entities.Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID, repositories.PageOf(from, size))
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, item := range items {
		item.Comments = comments[item.ID]
		if err := s.attachBookings(ctx, item, now); err != nil {
			return nil, err
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Search finds available items whose name or description contains text.
// Blank text matches nothing.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]*entities.Item, error) {
	if isBlank(text) {
		return []*entities.Item{}, nil
	}
	return s.items.Search(ctx, text, repositories.PageOf(from, size))
}

func (s *ItemService) attachBookings(ctx context.Context, item *entities.Item, now time.Time) error {
	last, err := s.bookings.FindLastApproved(ctx, item.ID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.FindNextApproved(ctx, item.ID, now)
	if err != nil {
		return err
	}

	if last != nil {
		item.LastBooking = last.Summary()
	}
	if next != nil {
		item.NextBooking = next.Summary()
	}
	return nil
}

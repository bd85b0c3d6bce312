package services

import (
	"context"
	"time"

	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// CommentService handles the comment ledger
type CommentService struct {
	comments repositories.CommentRepository
	users    repositories.UserRepository
	items    repositories.ItemRepository
	bookings repositories.BookingRepository
	tx       repositories.Transactor
	now      Clock
}

// NewCommentService creates a new comment service
func NewCommentService(
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	items repositories.ItemRepository,
	bookings repositories.BookingRepository,
	tx repositories.Transactor,
) *CommentService {
	return &CommentService{
		comments: comments,
		users:    users,
		items:    items,
		bookings: bookings,
		tx:       tx,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (s *CommentService) SetClock(clock Clock) {
	s.now = clock
}

// Add leaves a comment on an item. The author must have finished an approved booking of it.
func (s *CommentService) Add(ctx context.Context, authorID, itemID int64, text string) (*entities.Comment, error) {
	if isBlank(text) {
		return nil, apperrors.NewValidationError("comment text must not be blank")
	}

	var comment *entities.Comment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		author, err := s.users.GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		if _, err := s.items.GetByID(ctx, itemID); err != nil {
			return err
		}

		now := s.now()
		finished, err := s.bookings.FindLatestFinishedApproved(ctx, authorID, itemID, now)
		if err != nil {
			return err
		}
		if finished == nil {
			observability.LoggerFromContext(ctx).Debug().
				Int64("user_id", authorID).Int64("item_id", itemID).
				Msg("Comment rejected, no finished booking")
			return apperrors.NewNoEligibleBookingError("No booking for comment.")
		}

		comment = &entities.Comment{
			Text:       text,
			ItemID:     itemID,
			AuthorID:   authorID,
			AuthorName: author.Name,
			Created:    now,
		}
		return s.comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByItem returns an item's comments, oldest first
func (s *CommentService) ListByItem(ctx context.Context, itemID int64) ([]*entities.Comment, error) {
	return s.comments.ListByItem(ctx, itemID)
}

// ListByItems returns the comments of several items keyed by item ID.
// Every requested ID has an entry, empty when the item has no comments.
func (s *CommentService) ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]*entities.Comment, error) {
	comments, err := s.comments.ListByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	byItem := make(map[int64][]*entities.Comment, len(itemIDs))
	for _, id := range itemIDs {
		byItem[id] = []*entities.Comment{}
	}
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	return byItem, nil
}

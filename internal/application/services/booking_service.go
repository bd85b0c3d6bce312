package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/providers"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// BookingService runs the booking lifecycle: WAITING, then APPROVED or REJECTED by the item owner
type BookingService struct {
	bookings repositories.BookingRepository
	items    repositories.ItemRepository
	users    repositories.UserRepository
	tx       repositories.Transactor
	eventBus providers.EventBus
	metrics  *observability.Metrics
	now      Clock
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings repositories.BookingRepository,
	items repositories.ItemRepository,
	users repositories.UserRepository,
	tx repositories.Transactor,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		tx:       tx,
		now:      time.Now,
	}
}

// SetEventBus sets the bus that receives committed booking transitions
func (s *BookingService) SetEventBus(eventBus providers.EventBus, metrics *observability.Metrics) {
	s.eventBus = eventBus
	s.metrics = metrics
}

// SetClock replaces the time source
func (s *BookingService) SetClock(clock Clock) {
	s.now = clock
}

// NewBooking carries the fields of a booking request
type NewBooking struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Create requests a booking of someone else's available item
func (s *BookingService) Create(ctx context.Context, bookerID int64, in NewBooking) (*entities.Booking, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, apperrors.NewValidationError("start and end must be set")
	}
	if !in.Start.Before(in.End) {
		return nil, apperrors.NewInvalidRangeError("End date is equal or less than start date.")
	}

	var booking *entities.Booking
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, bookerID); err != nil {
			return err
		}
		item, err := s.items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID == bookerID {
			return apperrors.NewNoRelationError(fmt.Sprintf("User (id = %d) can't book own item (id = %d)", bookerID, item.ID))
		}
		if !item.Available {
			return apperrors.NewUnavailableError(fmt.Sprintf("Item with id = %d is not available.", item.ID))
		}

		booking = &entities.Booking{
			Start:  in.Start,
			End:    in.End,
			Status: entities.BookingStatusWaiting,
			Item:   entities.BookingItem{ID: item.ID, Name: item.Name, OwnerID: item.OwnerID},
			Booker: entities.BookingBooker{ID: bookerID},
		}
		return s.bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("booking_id", booking.ID).Int64("item_id", booking.Item.ID).Int64("booker_id", bookerID).
		Msg("Booking requested")
	s.publish(ctx, entities.BookingEventCreated, booking)
	return booking, nil
}

// Decide approves or rejects a waiting booking; only the item owner may do so
func (s *BookingService) Decide(ctx context.Context, bookingID, deciderID int64, approved bool) (*entities.Booking, error) {
	var booking *entities.Booking
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Item.OwnerID != deciderID {
			return apperrors.NewNoRelationError(fmt.Sprintf("User (id = %d) can't approve item (id = %d) because not being owner.", deciderID, booking.Item.ID))
		}
		if booking.Status != entities.BookingStatusWaiting {
			return apperrors.NewInvalidStateError("Can't approve/reject not waiting booking.")
		}

		booking.Status = entities.BookingStatusRejected
		if approved {
			booking.Status = entities.BookingStatusApproved
		}
		return s.bookings.UpdateStatus(ctx, booking.ID, booking.Status)
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("booking_id", booking.ID).Str("status", string(booking.Status)).
		Msg("Booking decided")

	eventType := entities.BookingEventRejected
	if approved {
		eventType = entities.BookingEventApproved
	}
	s.publish(ctx, eventType, booking)
	return booking, nil
}

// GetByID returns a booking to its booker or to the item owner
func (s *BookingService) GetByID(ctx context.Context, bookingID, viewerID int64) (*entities.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsRelatedTo(viewerID) {
		return nil, apperrors.NewNoRelationError(fmt.Sprintf("User (id = %d) has no relation to booking (id = %d)", viewerID, bookingID))
	}
	return booking, nil
}

// ListByBooker returns a page of the user's own bookings in the given state, newest start first
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*entities.Booking, error) {
	return s.list(ctx, bookerID, state, from, size, repositories.BookingFilter{BookerID: bookerID})
}

// ListByOwnedItems returns a page of bookings of the user's items in the given state, newest start first
func (s *BookingService) ListByOwnedItems(ctx context.Context, ownerID int64, state string, from, size int) ([]*entities.Booking, error) {
	return s.list(ctx, ownerID, state, from, size, repositories.BookingFilter{OwnerID: ownerID})
}

// list validates the state token before it looks the user up
func (s *BookingService) list(ctx context.Context, userID int64, token string, from, size int, scope repositories.BookingFilter) ([]*entities.Booking, error) {
	state, ok := entities.ParseBookingState(token)
	if !ok {
		return nil, apperrors.NewInvalidFilterError("Unknown state: " + token)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	filter := repositories.BookingFilterForState(state, s.now())
	filter.BookerID = scope.BookerID
	filter.OwnerID = scope.OwnerID
	filter.Page = repositories.PageOf(from, size)
	return s.bookings.List(ctx, filter)
}

// publish emits a committed transition; delivery failures never fail the operation
func (s *BookingService) publish(ctx context.Context, eventType entities.BookingEventType, booking *entities.Booking) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewBookingEvent(eventType, booking, s.now())
	if err := s.eventBus.Publish(ctx, providers.EventChannelBookings, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Int64("booking_id", booking.ID).Msg("Failed to publish booking event")
		return
	}
	observability.RecordBookingEvent(ctx, s.metrics, string(eventType))
}

package repositories

import (
	"context"
	"time"

	"github.com/shareit/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create inserts the booking and fills its generated ID
	Create(ctx context.Context, booking *entities.Booking) error

	// UpdateStatus overwrites the status of an existing booking
	UpdateStatus(ctx context.Context, id int64, status entities.BookingStatus) error

	// GetByID retrieves a booking with its item and booker references
	GetByID(ctx context.Context, id int64) (*entities.Booking, error)

	// List returns bookings matching the filter ordered by start, newest first
	List(ctx context.Context, filter BookingFilter) ([]*entities.Booking, error)

	// FindLastApproved returns the approved booking with the latest start before now, or nil
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*entities.Booking, error)

	// FindNextApproved returns the approved booking with the earliest start after now, or nil
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*entities.Booking, error)

	// FindLatestFinishedApproved returns the booker's approved booking of the item
	// with the latest end before now, or nil
	FindLatestFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (*entities.Booking, error)
}

// BookingFilter narrows a booking listing. Zero values leave a field unconstrained.
// All time bounds are strict.
type BookingFilter struct {
	BookerID    int64
	OwnerID     int64
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Status      entities.BookingStatus
	Page        Page
}

// BookingFilterForState translates a state token into store predicates evaluated at now
func BookingFilterForState(state entities.BookingState, now time.Time) BookingFilter {
	var f BookingFilter
	switch state {
	case entities.BookingStatePast:
		f.EndBefore = &now
	case entities.BookingStateFuture:
		f.StartAfter = &now
	case entities.BookingStateCurrent:
		f.StartBefore = &now
		f.EndAfter = &now
	case entities.BookingStateWaiting:
		f.Status = entities.BookingStatusWaiting
	case entities.BookingStateRejected:
		f.Status = entities.BookingStatusRejected
	}
	return f
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking lifecycle event
type BookingEventType string

const (
	BookingEventCreated  BookingEventType = "booking.created"
	BookingEventApproved BookingEventType = "booking.approved"
	BookingEventRejected BookingEventType = "booking.rejected"
)

// BookingEvent is published after a booking write has committed
type BookingEvent struct {
	ID        string           `json:"id"`
	Type      BookingEventType `json:"type"`
	BookingID int64            `json:"bookingId"`
	ItemID    int64            `json:"itemId"`
	BookerID  int64            `json:"bookerId"`
	OwnerID   int64            `json:"ownerId"`
	Status    BookingStatus    `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewBookingEvent creates an event describing the booking's current status
func NewBookingEvent(eventType BookingEventType, booking *Booking, at time.Time) *BookingEvent {
	return &BookingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		BookingID: booking.ID,
		ItemID:    booking.Item.ID,
		BookerID:  booking.Booker.ID,
		OwnerID:   booking.Item.OwnerID,
		Status:    booking.Status,
		Timestamp: at,
	}
}

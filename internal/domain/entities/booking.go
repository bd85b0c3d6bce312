package entities

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
	// BookingStatusCanceled is a valid stored value that no operation produces
	BookingStatusCanceled BookingStatus = "CANCELED"
)

// Booking represents a request to borrow an item for a time range.
// Item and booker are denormalized to the few fields listings need.
type Booking struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   BookingItem   `json:"item"`
	Booker BookingBooker `json:"booker"`
}

// BookingItem is the item reference carried by a booking
type BookingItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"-"`
}

// BookingBooker is the booker reference carried by a booking
type BookingBooker struct {
	ID int64 `json:"id"`
}

// IsRelatedTo reports whether the user booked the item or owns it
func (b *Booking) IsRelatedTo(userID int64) bool {
	return b.Booker.ID == userID || b.Item.OwnerID == userID
}

// Summary returns the compact view attached to items
func (b *Booking) Summary() *BookingSummary {
	return &BookingSummary{
		ID:       b.ID,
		BookerID: b.Booker.ID,
		Start:    b.Start,
		End:      b.End,
	}
}

// BookingState selects a subset of a user's bookings relative to now
type BookingState string

const (
	BookingStateAll      BookingState = "ALL"
	BookingStateCurrent  BookingState = "CURRENT"
	BookingStatePast     BookingState = "PAST"
	BookingStateFuture   BookingState = "FUTURE"
	BookingStateWaiting  BookingState = "WAITING"
	BookingStateRejected BookingState = "REJECTED"
)

// ParseBookingState parses a case-sensitive state token
func ParseBookingState(token string) (BookingState, bool) {
	switch state := BookingState(token); state {
	case BookingStateAll, BookingStateCurrent, BookingStatePast,
		BookingStateFuture, BookingStateWaiting, BookingStateRejected:
		return state, true
	default:
		return "", false
	}
}

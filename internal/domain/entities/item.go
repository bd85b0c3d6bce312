package entities

import "time"

// Item represents a thing a user lists for others to borrow.
// LastBooking and NextBooking are only filled for the owner's view.
type Item struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Available   bool            `json:"available" db:"available"`
	OwnerID     int64           `json:"-" db:"owner_id"`
	RequestID   *int64          `json:"requestId" db:"request_id"`
	LastBooking *BookingSummary `json:"lastBooking" db:"-"`
	NextBooking *BookingSummary `json:"nextBooking" db:"-"`
	Comments    []*Comment      `json:"comments" db:"-"`
}

// BookingSummary is the compact booking view attached to an item
type BookingSummary struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

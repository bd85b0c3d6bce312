package entities

import "time"

// ItemRequest represents a publicized need for an item nobody has listed yet
type ItemRequest struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	RequesterID int64     `json:"-" db:"requester_id"`
	Created     time.Time `json:"created" db:"created"`
	Items       []*Item   `json:"items" db:"-"`
}

package repositories

import "context"

// Page selects a window of an ordered result set
type Page struct {
	Offset int
	Limit  int
}

// PageOf converts the public from/size pair into a page.
// The window starts at the beginning of the page containing from.
func PageOf(from, size int) Page {
	if size <= 0 {
		return Page{}
	}
	return Page{Offset: (from / size) * size, Limit: size}
}

// Transactor runs a unit of work inside a single database transaction.
// Repository calls made with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

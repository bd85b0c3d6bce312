package providers

import (
	"context"

	"github.com/shareit/backend/internal/domain/entities"
)

// EventChannelBookings is the channel carrying booking lifecycle events
const EventChannelBookings = "bookings:events"

// EventBus defines the interface for publishing and subscribing to booking events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

package events

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := decodeEvent([]byte("{not json"))
	require.Error(t, err)
}

func TestEncodeEvent_WireShape(t *testing.T) {
	event := &entities.BookingEvent{
		ID:        "ev-1",
		Type:      entities.BookingEventApproved,
		BookingID: 3,
		Status:    entities.BookingStatusApproved,
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := encodeEvent(event)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"type":"booking.approved"`)
	assert.Contains(t, string(data), `"bookingId":3`)
	assert.Contains(t, string(data), `"status":"APPROVED"`)
}

func TestBroadcast_SkipsFullSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := &RedisEventBus{
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entities.BookingEvent]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}

	full := make(chan *entities.BookingEvent)
	open := make(chan *entities.BookingEvent, 1)
	bus.subscribers["bookings:events"] = map[chan *entities.BookingEvent]struct{}{full: {}, open: {}}

	bus.broadcast("bookings:events", &entities.BookingEvent{ID: "ev-1"})

	select {
	case ev := <-open:
		assert.Equal(t, "ev-1", ev.ID)
	default:
		t.Fatal("expected event on buffered subscriber")
	}
}

func TestRemoveSubscriber_ClosesChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := &RedisEventBus{
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entities.BookingEvent]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
	ch := make(chan *entities.BookingEvent, 1)
	bus.subscribers["bookings:events"] = map[chan *entities.BookingEvent]struct{}{ch: {}}

	bus.removeSubscriber("bookings:events", ch)

	_, ok := <-ch
	assert.False(t, ok)
	assert.Empty(t, bus.subscribers)
}

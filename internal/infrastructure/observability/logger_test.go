package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContext_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	ctx := WithRequestID(context.Background(), "req-42")
	LoggerFromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
}

func TestLoggerFromContext_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	LoggerFromContext(context.Background()).Info().Msg("hello")

	assert.NotContains(t, buf.String(), "request_id")
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, nil, "GET", "/users", 200, 0)
		RecordCacheHit(ctx, nil, "user")
		RecordCacheMiss(ctx, nil, "user")
		RecordBookingEvent(ctx, nil, "booking.created")
	})
}

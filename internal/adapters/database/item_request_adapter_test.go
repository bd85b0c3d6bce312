package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRequestAdapter_ListExcludingRequester(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewItemRequestAdapter(client)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`"requester_id" != .*ORDER BY "created" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "requester_id", "created"}).
			AddRow(int64(2), "Need a ladder", int64(3), now).
			AddRow(int64(1), "Need a tent", int64(4), now.Add(-time.Hour)))

	requests, err := adapter.ListExcludingRequester(context.Background(), 1, repositories.PageOf(0, 10))

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "Need a ladder", requests[0].Description)
	assert.Equal(t, int64(3), requests[0].RequesterID)
}

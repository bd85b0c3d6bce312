package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shareit/backend/internal/api/handlers"
	"github.com/shareit/backend/internal/domain/entities"
	apperrors "github.com/shareit/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestItemRequestHandler_CreateRequest(t *testing.T) {
	svc := new(MockItemRequestService)
	handler := handlers.NewItemRequestHandler(svc)
	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	svc.On("Create", mock.Anything, int64(1), "Need a tent").
		Return(&entities.ItemRequest{ID: 2, Description: "Need a tent", RequesterID: 1, Created: created, Items: []*entities.Item{}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{"description":"Need a tent"}`))
	req.Header.Set(handlers.UserIDHeader, "1")
	rec := httptest.NewRecorder()

	handler.CreateRequest(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"description":"Need a tent","created":"2026-04-01T08:00:00Z","items":[]}`, rec.Body.String())
}

func TestItemRequestHandler_ListOtherRequests(t *testing.T) {
	svc := new(MockItemRequestService)
	handler := handlers.NewItemRequestHandler(svc)
	svc.On("ListAllButOwner", mock.Anything, int64(1), 0, 2).Return([]*entities.ItemRequest{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/requests/all?size=2", nil)
	req.Header.Set(handlers.UserIDHeader, "1")
	rec := httptest.NewRecorder()

	handler.ListOtherRequests(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestItemRequestHandler_GetRequest_NotFound(t *testing.T) {
	svc := new(MockItemRequestService)
	handler := handlers.NewItemRequestHandler(svc)
	svc.On("GetByID", mock.Anything, int64(1), int64(99)).Return(nil, apperrors.NewNotFoundError("item request with id 99 not found"))

	req := httptest.NewRequest(http.MethodGet, "/requests/99", nil)
	req.SetPathValue("id", "99")
	req.Header.Set(handlers.UserIDHeader, "1")
	rec := httptest.NewRecorder()

	handler.GetRequest(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No such entity exists.", decodeError(t, rec).Error)
}

func TestItemRequestHandler_ListOwnRequests_Error(t *testing.T) {
	svc := new(MockItemRequestService)
	handler := handlers.NewItemRequestHandler(svc)
	svc.On("ListByOwner", mock.Anything, int64(5)).Return(nil, apperrors.NewNotFoundError("user with id 5 not found"))

	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req.Header.Set(handlers.UserIDHeader, "5")
	rec := httptest.NewRecorder()

	handler.ListOwnRequests(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

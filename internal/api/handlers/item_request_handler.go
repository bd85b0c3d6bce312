package handlers

import (
	"context"
	"net/http"

	"github.com/shareit/backend/internal/domain/entities"
)

// ItemRequestService defines the interface for item request operations
type ItemRequestService interface {
	Create(ctx context.Context, requesterID int64, description string) (*entities.ItemRequest, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.ItemRequest, error)
	ListAllButOwner(ctx context.Context, userID int64, from, size int) ([]*entities.ItemRequest, error)
	GetByID(ctx context.Context, viewerID, requestID int64) (*entities.ItemRequest, error)
}

// ItemRequestHandler handles item request board requests
type ItemRequestHandler struct {
	service ItemRequestService
}

// NewItemRequestHandler creates a new item request handler
func NewItemRequestHandler(service ItemRequestService) *ItemRequestHandler {
	return &ItemRequestHandler{service: service}
}

type itemRequestBody struct {
	Description string `json:"description"`
}

// CreateRequest handles POST /requests
func (h *ItemRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req itemRequestBody
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	request, err := h.service.Create(r.Context(), requesterID, req.Description)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, request)
}

// ListOwnRequests handles GET /requests
func (h *ItemRequestHandler) ListOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	requests, err := h.service.ListByOwner(r.Context(), requesterID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, requests)
}

// ListOtherRequests handles GET /requests/all
func (h *ItemRequestHandler) ListOtherRequests(w http.ResponseWriter, r *http.Request) {
	viewerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	requests, err := h.service.ListAllButOwner(r.Context(), viewerID, from, size)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, requests)
}

// GetRequest handles GET /requests/{id}
func (h *ItemRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	viewerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	request, err := h.service.GetByID(r.Context(), viewerID, requestID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, request)
}

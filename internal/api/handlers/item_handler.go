package handlers

import (
	"context"
	"net/http"

	"github.com/shareit/backend/internal/application/services"
	"github.com/shareit/backend/internal/domain/entities"
)

// ItemService defines the interface for item catalog operations
type ItemService interface {
	Create(ctx context.Context, ownerID int64, in services.NewItem) (*entities.Item, error)
	Update(ctx context.Context, itemID, ownerID int64, update services.ItemUpdate) (*entities.Item, error)
	GetByID(ctx context.Context, requesterID, itemID int64) (*entities.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*entities.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]*entities.Item, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	Add(ctx context.Context, authorID, itemID int64, text string) (*entities.Comment, error)
}

// ItemHandler handles item and comment requests
type ItemHandler struct {
	items    ItemService
	comments CommentService
}

// NewItemHandler creates a new item handler
func NewItemHandler(items ItemService, comments CommentService) *ItemHandler {
	return &ItemHandler{items: items, comments: comments}
}

type itemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	in := services.NewItem{Available: req.Available, RequestID: req.RequestID}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Description != nil {
		in.Description = *req.Description
	}

	item, err := h.items.Create(r.Context(), ownerID, in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// UpdateItem handles PATCH /items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	item, err := h.items.Update(r.Context(), itemID, ownerID, services.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// GetItem handles GET /items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	viewerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	item, err := h.items.GetByID(r.Context(), viewerID, itemID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	items, err := h.items.ListByOwner(r.Context(), ownerID, from, size)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// SearchItems handles GET /items/search
func (h *ItemHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	if _, err := optionalUserID(r); err != nil {
		respondWithError(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	items, err := h.items.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// AddComment handles POST /items/{id}/comment
func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	comment, err := h.comments.Add(r.Context(), authorID, itemID, req.Text)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, comment)
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shareit/backend/internal/application/services"
	"github.com/shareit/backend/internal/domain/entities"
	apperrors "github.com/shareit/backend/pkg/errors"
	"github.com/shareit/backend/pkg/utils"
)

// BookingService defines the interface for booking lifecycle operations
type BookingService interface {
	Create(ctx context.Context, bookerID int64, in services.NewBooking) (*entities.Booking, error)
	Decide(ctx context.Context, bookingID, deciderID int64, approved bool) (*entities.Booking, error)
	GetByID(ctx context.Context, bookingID, viewerID int64) (*entities.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*entities.Booking, error)
	ListByOwnedItems(ctx context.Context, ownerID int64, state string, from, size int) ([]*entities.Booking, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRequest struct {
	ItemID *int64           `json:"itemId"`
	Start  *utils.Timestamp `json:"start"`
	End    *utils.Timestamp `json:"end"`
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req bookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	if req.ItemID == nil || req.Start == nil || req.End == nil {
		respondWithError(w, r, apperrors.NewValidationError("itemId, start and end are required"))
		return
	}

	booking, err := h.service.Create(r.Context(), bookerID, services.NewBooking{
		ItemID: *req.ItemID,
		Start:  req.Start.Time,
		End:    req.End.Time,
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// DecideBooking handles PATCH /bookings/{id}?approved=
func (h *BookingHandler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	deciderID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError("approved must be true or false"))
		return
	}

	booking, err := h.service.Decide(r.Context(), bookingID, deciderID, approved)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// GetBooking handles GET /bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	viewerID, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, viewerID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// ListBookings handles GET /bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListByBooker)
}

// ListOwnerBookings handles GET /bookings/owner
func (h *BookingHandler) ListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListByOwnedItems)
}

type bookingLister func(ctx context.Context, userID int64, state string, from, size int) ([]*entities.Booking, error)

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, lister bookingLister) {
	id, err := userID(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	state := r.URL.Query().Get("state")
	if state == "" {
		state = string(entities.BookingStateAll)
	}

	bookings, err := lister(r.Context(), id, state, from, size)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bookings)
}

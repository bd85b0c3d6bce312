package routes

import (
	"net/http"

	"github.com/shareit/backend/internal/api/handlers"
	"github.com/shareit/backend/internal/api/middleware"
	"github.com/shareit/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	userHandler        *handlers.UserHandler
	itemHandler        *handlers.ItemHandler
	itemRequestHandler *handlers.ItemRequestHandler
	bookingHandler     *handlers.BookingHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	userHandler *handlers.UserHandler,
	itemHandler *handlers.ItemHandler,
	itemRequestHandler *handlers.ItemRequestHandler,
	bookingHandler *handlers.BookingHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		userHandler:        userHandler,
		itemHandler:        itemHandler,
		itemRequestHandler: itemRequestHandler,
		bookingHandler:     bookingHandler,
		allowedOrigins:     allowedOrigins,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.handle("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// User endpoints
	r.handle("POST /users", r.userHandler.CreateUser)
	r.handle("GET /users", r.userHandler.ListUsers)
	r.handle("GET /users/{id}", r.userHandler.GetUser)
	r.handle("PATCH /users/{id}", r.userHandler.UpdateUser)
	r.handle("DELETE /users/{id}", r.userHandler.DeleteUser)

	// Item endpoints
	r.handle("POST /items", r.itemHandler.CreateItem)
	r.handle("GET /items", r.itemHandler.ListItems)
	r.handle("GET /items/search", r.itemHandler.SearchItems)
	r.handle("GET /items/{id}", r.itemHandler.GetItem)
	r.handle("PATCH /items/{id}", r.itemHandler.UpdateItem)
	r.handle("POST /items/{id}/comment", r.itemHandler.AddComment)

	// Item request endpoints
	r.handle("POST /requests", r.itemRequestHandler.CreateRequest)
	r.handle("GET /requests", r.itemRequestHandler.ListOwnRequests)
	r.handle("GET /requests/all", r.itemRequestHandler.ListOtherRequests)
	r.handle("GET /requests/{id}", r.itemRequestHandler.GetRequest)

	// Booking endpoints
	r.handle("POST /bookings", r.bookingHandler.CreateBooking)
	r.handle("GET /bookings", r.bookingHandler.ListBookings)
	r.handle("GET /bookings/owner", r.bookingHandler.ListOwnerBookings)
	r.handle("GET /bookings/{id}", r.bookingHandler.GetBooking)
	r.handle("PATCH /bookings/{id}", r.bookingHandler.DecideBooking)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) handle(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.RouteRecorder(h))
}

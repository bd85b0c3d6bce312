package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
	"go.opentelemetry.io/otel/trace"
)

// UserIDHeader carries the id of the acting user
const UserIDHeader = "X-Sharer-User-Id"

const (
	defaultFrom = 0
	defaultSize = 10
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

type errorMapping struct {
	status   int
	category string
}

var errorMappings = map[apperrors.ErrorType]errorMapping{
	apperrors.ErrorTypeValidation:        {http.StatusBadRequest, "Validation failed."},
	apperrors.ErrorTypeNotFound:          {http.StatusNotFound, "No such entity exists."},
	apperrors.ErrorTypeForbidden:         {http.StatusForbidden, "User doesn't own item."},
	apperrors.ErrorTypeNoRelation:        {http.StatusNotFound, "User has no relation to booking."},
	apperrors.ErrorTypeInvalidState:      {http.StatusBadRequest, "Booking status is not waiting."},
	apperrors.ErrorTypeInvalidRange:      {http.StatusBadRequest, "Booking hasn't been saved."},
	apperrors.ErrorTypeUnavailable:       {http.StatusBadRequest, "Booking hasn't been saved."},
	apperrors.ErrorTypeNoEligibleBooking: {http.StatusBadRequest, "No finished booking for comment."},
	apperrors.ErrorTypeConflict:          {http.StatusConflict, "Entity hasn't been saved."},
	apperrors.ErrorTypeInternal:          {http.StatusInternalServerError, "Internal server error."},
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondWithError writes the status and body for err and logs it
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("unexpected error", err)
	}

	if appErr.Type == apperrors.ErrorTypeInvalidFilter {
		logger.Warn().Str("error_type", string(appErr.Type)).Msg(appErr.Message)
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
		return
	}

	mapping, ok := errorMappings[appErr.Type]
	if !ok {
		mapping = errorMappings[apperrors.ErrorTypeInternal]
	}

	if mapping.status == http.StatusInternalServerError {
		observability.RecordError(trace.SpanFromContext(r.Context()), err)
		logger.Error().Err(err).Msg("Request failed")
		respondWithJSON(w, mapping.status, ErrorResponse{Error: mapping.category})
		return
	}

	logger.Warn().Str("error_type", string(appErr.Type)).Msg(appErr.Message)
	respondWithJSON(w, mapping.status, ErrorResponse{Error: mapping.category, Description: appErr.Message})
}

// decodeBody reads a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("request body is required")
		}
		return apperrors.NewValidationError("invalid request payload")
	}
	return nil
}

// userID reads the acting user from the X-Sharer-User-Id header
func userID(r *http.Request) (int64, error) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return 0, apperrors.NewValidationError(UserIDHeader + " header is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s header %q is not a number", UserIDHeader, raw))
	}
	return id, nil
}

// optionalUserID is userID for endpoints that accept anonymous callers as id 0
func optionalUserID(r *http.Request) (int64, error) {
	if r.Header.Get(UserIDHeader) == "" {
		return 0, nil
	}
	return userID(r)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s %q is not a number", name, raw))
	}
	return id, nil
}

// page reads the from and size query parameters
func page(r *http.Request) (from, size int, err error) {
	from, err = queryInt(r, "from", defaultFrom)
	if err != nil {
		return 0, 0, err
	}
	size, err = queryInt(r, "size", defaultSize)
	if err != nil {
		return 0, 0, err
	}
	if from < 0 {
		return 0, 0, apperrors.NewValidationError("from must not be negative")
	}
	if size <= 0 {
		return 0, 0, apperrors.NewValidationError("size must be positive")
	}
	return from, size, nil
}

func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s %q is not a number", name, raw))
	}
	return v, nil
}

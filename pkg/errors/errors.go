package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a referenced user, item, booking or request does not exist
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates malformed input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates the store rejected a write (constraint violation)
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeForbidden indicates the actor does not own the item it tries to change
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeNoRelation indicates the actor is neither booker nor owner of a booking,
	// or is the owner trying to book their own item
	ErrorTypeNoRelation ErrorType = "NO_RELATION"

	// ErrorTypeInvalidState indicates a transition on a booking that is not WAITING
	ErrorTypeInvalidState ErrorType = "INVALID_STATE"

	// ErrorTypeInvalidRange indicates a booking whose start is not before its end
	ErrorTypeInvalidRange ErrorType = "INVALID_RANGE"

	// ErrorTypeInvalidFilter indicates an unknown booking state token
	ErrorTypeInvalidFilter ErrorType = "INVALID_FILTER"

	// ErrorTypeUnavailable indicates the item is not available for booking
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"

	// ErrorTypeNoEligibleBooking indicates a comment without a finished approved booking
	ErrorTypeNoEligibleBooking ErrorType = "NO_ELIGIBLE_BOOKING"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap creates an error of the given type carrying a cause
func Wrap(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, err error) *AppError {
	return Wrap(ErrorTypeConflict, message, err)
}

// NewForbiddenError creates an error for an actor that does not own the item
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
	}
}

// NewNoRelationError creates an error for an actor without a relation to a booking
func NewNoRelationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNoRelation,
		Message: message,
	}
}

// NewInvalidStateError creates an error for a transition out of a non-waiting status
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: message,
	}
}

// NewInvalidRangeError creates an error for a start/end pair that is not strictly ordered
func NewInvalidRangeError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidRange,
		Message: message,
	}
}

// NewInvalidFilterError creates an error for an unknown booking state token
func NewInvalidFilterError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidFilter,
		Message: message,
	}
}

// NewUnavailableError creates an error for an item that cannot be booked
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: message,
	}
}

// NewNoEligibleBookingError creates an error for a comment without a finished booking
func NewNoEligibleBookingError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNoEligibleBooking,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return Wrap(ErrorTypeInternal, message, err)
}

// TypeOf returns the type of the first AppError in the chain, or ErrorTypeInternal
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

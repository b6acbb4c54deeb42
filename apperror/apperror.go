// Package apperror defines a centralized system for application-specific
// errors. Every handler and middleware renders failures through this package,
// which keeps the HTTP status mapping and the response shape in one place.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (missing/invalid token,
	// bad credentials) and maps to 401
	AuthError
	// ForbiddenError represents an authorization error (authenticated but
	// insufficient role or membership) and maps to 403
	ForbiddenError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// ExternalServiceError represents an error from an external service
	ExternalServiceError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g. resource already exists
	ConflictError
)

// AppError is the custom error type for the application. It carries a
// client-facing message and may wrap an underlying error kept for internal
// diagnostics only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error, never sent to clients
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so errors.Is and errors.As can walk
// the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ExternalServiceError:
		return http.StatusBadGateway
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. Prefer the typed constructors below.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlying,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewAuthError creates a new AuthError (authentication, 401)
func NewAuthError(message string, underlying error) *AppError {
	return NewAppError(AuthError, message, underlying)
}

// NewForbiddenError creates a new ForbiddenError (authorization, 403)
func NewForbiddenError(message string, underlying error) *AppError {
	return NewAppError(ForbiddenError, message, underlying)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlying error) *AppError {
	return NewAppError(ValidationError, message, underlying)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlying error) *AppError {
	return NewAppError(BadRequestError, message, underlying)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// NewExternalServiceError creates a new ExternalServiceError
func NewExternalServiceError(message string, underlying error) *AppError {
	return NewAppError(ExternalServiceError, message, underlying)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlying error) *AppError {
	return NewAppError(MigrationError, message, underlying)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlying error) *AppError {
	return NewAppError(ConflictError, message, underlying)
}

// ErrorResponse is the JSON payload sent to clients for any failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ToResponse converts an AppError to an ErrorResponse. Only the user-facing
// message is included, never the wrapped error.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Success: false, Message: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbiddenError checks if an error is a ForbiddenError (authorization problem)
func IsForbiddenError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when a registration email is already in use.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned for login failures. Unknown email
	// and wrong password produce this same value so callers cannot tell
	// which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTodoNotFound is returned when a todo is absent or belongs to a
	// different user. The two cases are indistinguishable on purpose.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrEmptyTodoText is returned when creating a todo with no text.
	ErrEmptyTodoText = errors.New("todo text must not be empty")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTodoNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TODO_NOT_FOUND")
	case errors.Is(err, ErrEmptyTodoText):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("Username already exists.")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("Email already exists.")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("Incorrect username or password")
	// ErrProjectNotFound is returned when a project id has no record.
	ErrProjectNotFound = errors.New("project not found")
	// ErrFileUnavailable is returned when a project record exists but its
	// backing file cannot be read from storage.
	ErrFileUnavailable = errors.New("stored file unavailable")
)

// ValidationError carries a registration rule violation. The message is the
// user-facing rule text.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse is the single error envelope used by every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for success messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// HTTPError pairs a response status with the envelope message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to the JSON envelope.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors at the handler boundary.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: ve.Message}
	}
	switch {
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
		return &HTTPError{StatusCode: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: err.Error()}
	case errors.Is(err, ErrProjectNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, ErrFileUnavailable):
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error"}
	}
}

package errors

import (
	stderrors "errors"
	"net/http"
)

var (
	// ErrPersistence wraps any failure to read or write the fleet roster.
	ErrPersistence = stderrors.New("fleet store failure")
	// ErrInvalidRoster is returned when a loaded roster breaks the vehicle invariants.
	ErrInvalidRoster = stderrors.New("invalid roster")
	// ErrNotAuthorized is returned when a non-administrator asks for a reset.
	ErrNotAuthorized = stderrors.New("not authorized")
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// WriteHTTPError writes err as a plain text response. Errors that are not
// HTTPErrors become a 500 with a generic message.
func WriteHTTPError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrBadRequest   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
)

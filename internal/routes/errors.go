package routes

import (
	"errors"
	"net/http"

	"visitor-reception/internal/report"
	"visitor-reception/internal/visitor"
)

// HTTPError represents an error with an associated HTTP status code and user message
type HTTPError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly message
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, err error, message string) *HTTPError {
	return &HTTPError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// Routes-specific errors
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidVisitorID = errors.New("invalid visitor id")
	ErrInvalidFilter    = errors.New("invalid status filter")

	ErrInternalServer = errors.New("internal server error")
	ErrDatabaseError  = errors.New("database error")
)

// errorStatusMap maps errors to HTTP status codes
var errorStatusMap = map[error]int{
	// 400 Bad Request
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrInvalidVisitorID:     http.StatusBadRequest,
	ErrInvalidFilter:        http.StatusBadRequest,
	report.ErrUnknownPeriod: http.StatusBadRequest,

	// 404 Not Found
	visitor.ErrNotFound: http.StatusNotFound,

	// 500 Internal Server Error
	ErrInternalServer: http.StatusInternalServerError,
	ErrDatabaseError:  http.StatusInternalServerError,
}

// errorMessageMap maps errors to user-friendly messages
var errorMessageMap = map[error]string{
	ErrInvalidRequest:       "Invalid request format",
	ErrInvalidVisitorID:     "Visitor id must be a number",
	ErrInvalidFilter:        "Unknown status filter",
	report.ErrUnknownPeriod: "Unknown export period",

	visitor.ErrNotFound: "Visitor not found",

	ErrInternalServer: "An internal error occurred",
	ErrDatabaseError:  "An internal error occurred",
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	// Field-level validation failures are the client's fault
	var validationErr *visitor.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	// Default to 500 Internal Server Error
	return http.StatusInternalServerError
}

// GetErrorMessage returns a user-friendly message for an error. Internal
// detail never reaches the client; it is only logged server-side.
func GetErrorMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}

	var validationErr *visitor.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	for knownErr, message := range errorMessageMap {
		if errors.Is(err, knownErr) {
			return message
		}
	}

	if GetErrorStatus(err) >= 500 {
		return "An internal error occurred"
	}
	return err.Error()
}

package sessionsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cinelog/sessiond/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeServerError    = "server_error"
	ErrorCodeRateLimited    = "rate_limit_exceeded"
)

// APIError represents a typed wire error. It implements the error interface
// and is used both by the server (to write HTTP responses) and by the SDK
// client (to represent failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "unauthorized")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Code:        e.Code,
		Description: e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request is malformed or missing
	// required parameters.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrUnauthorized is returned for any missing, unknown, expired, or
	// revoked credential. The description is deliberately uniform so callers
	// cannot probe which condition fired.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "invalid or expired token",
	}

	// ErrServerError is returned when an unexpected internal condition occurred.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}
)

package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes shared between the server handlers and the SDK client.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeConflict         = "conflict"
	ErrorCodeValidationFailed = "validation_failed"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeServerError      = "server_error"
)

// APIError is the error envelope as a Go error. The server uses it to
// write responses; the client reconstructs it from non-2xx responses so
// callers can switch on Code.
type APIError struct {
	// StatusCode is the HTTP status this error travels with.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is the human-readable message.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequest reports a malformed or incomplete request body.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidToken reports a missing or unverifiable access token.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "invalid or missing access token",
	}

	// ErrServerError reports an unexpected internal failure. Details stay
	// in the server logs.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

package api

import (
	"errors"
	"fmt"
)

// Error is a structured non-OK response from the backend, decoded from its
// JSON error body {success, message, errorType, statusCode}.
type Error struct {
	Status    int    // HTTP status the response arrived with
	ErrorType string // machine marker, e.g. "not_found", "no_content"
	Message   string // backend-supplied human message
}

func (e *Error) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("backend error (%s - %d): %s", e.ErrorType, e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// AsError unwraps err into a backend *Error if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == 404
}

// IsNoContent reports whether err is the backend's empty-list answer
// (HTTP 204 with a no_content marker).
func IsNoContent(err error) bool {
	apiErr, ok := AsError(err)
	return ok && (apiErr.Status == 204 || apiErr.ErrorType == "no_content")
}

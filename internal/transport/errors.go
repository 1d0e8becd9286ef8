package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestFailed wraps failures that produced no backend verdict: network
// errors, timeouts, cancelled contexts, unreadable bodies.
var ErrRequestFailed = errors.New("backend request failed")

// ErrMalformedResponse is returned when a 2xx body does not carry what the
// contract promises.
var ErrMalformedResponse = errors.New("malformed backend response")

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unauthorized reports a 401 response.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Message returns the backend-provided message carried by err, if any.
func Message(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

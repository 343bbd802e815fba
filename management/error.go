package management

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the Management API.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"statusCode"`

	// Code is the API's short error code (for example
	// "invalid_query_string").
	Code string `json:"error"`

	// Message is the API's human-readable diagnostic.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// NotFound reports whether the error is a 404.
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newError builds an *Error from a non-2xx response body. Bodies that are
// not the API's JSON error shape still produce a usable Error carrying the
// status.
func newError(statusCode int, body []byte) error {
	apiErr := &Error{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	apiErr.StatusCode = statusCode
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(statusCode)
	}
	return apiErr
}

package giphy

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid giphy configuration")
	// ErrRequestFailed indicates a transport failure
	ErrRequestFailed = errors.New("giphy request failed")
	// ErrInvalidResponse indicates a malformed or empty response body
	ErrInvalidResponse = errors.New("invalid response from giphy")
	// ErrInvalidKind indicates an unknown content kind
	ErrInvalidKind = errors.New("invalid content kind")
	// ErrInvalidRating indicates an unknown content rating
	ErrInvalidRating = errors.New("invalid content rating")
	// ErrMissingArgument indicates an empty search term or identifier
	ErrMissingArgument = errors.New("missing argument")
)

// APIError represents a non-success response from the GIPHY API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("giphy API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the API key ran out of quota
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// StatusCode extracts the HTTP status from err, or 0 if err is not an APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

package recipients

import (
	"errors"
	"net/http"
)

// Domain errors for recipient operations.
var (
	ErrNotFound     = errors.New("recipient not found")
	ErrDuplicate    = errors.New("recipient email already registered")
	ErrInvalidEmail = errors.New("recipient email is invalid")
)

// MapHTTPStatus maps recipient domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidEmail) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package clauses

import (
	"errors"
	"net/http"
)

// Domain errors for clause operations.
var (
	ErrNotFound    = errors.New("clause not found")
	ErrDuplicate   = errors.New("clause code already exists")
	ErrEmptyText   = errors.New("clause text is required")
	ErrEmbedFailed = errors.New("embedding service request failed")
	ErrEmptyQuery  = errors.New("search query is required")
)

// MapHTTPStatus maps clause domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyText) || errors.Is(err, ErrEmptyQuery) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmbedFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

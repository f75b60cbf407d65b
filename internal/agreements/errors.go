package agreements

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/accord/pkg/graph"
)

// Domain errors for agreement operations.
var (
	ErrNotFound      = errors.New("agreement not found")
	ErrDuplicate     = errors.New("agreement already exists")
	ErrInvalidIntake = errors.New("intake is missing required fields")
	ErrInvalidDate   = errors.New("mou_date must be in YYYY-MM-DD form")
	ErrInvalidFile   = errors.New("invalid or missing file upload")
	ErrFileTooLarge  = errors.New("uploaded file exceeds size limit")
)

// MapHTTPStatus maps agreement domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidIntake) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	// A cancelled workflow run is the caller abandoning the request,
	// not a server failure.
	if errors.Is(err, graph.ErrCancelled) {
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

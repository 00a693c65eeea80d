package notes

import (
	"errors"
	"net/http"

	"github.com/pmaterna/apibase/pkg/pagination"
)

// Domain errors for note operations.
var (
	ErrNotFound      = errors.New("note not found")
	ErrTitleRequired = errors.New("title required")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, pagination.ErrInvalidLimit),
		errors.Is(err, pagination.ErrInvalidOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

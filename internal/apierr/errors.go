package apierr

import (
	"errors"
	"net/http"
)

// Error kinds surfaced by the store, the fake backend and the forwarder.
// Callers wrap them with fmt.Errorf("...: %w", ErrX) and the HTTP boundary
// maps them back with Status.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrBadGateway      = errors.New("bad gateway")
)

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

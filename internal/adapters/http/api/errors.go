package api

import (
	"errors"
	"net/http"

	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/squad"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("customer pin required")
	ErrServe        = errors.New("http serve failed")
)

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, model.ErrUnknownPosition),
		errors.Is(err, service.ErrUnknownQuality):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, service.ErrWrongPIN):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrCustomerNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, squad.ErrEmptySquad):
		return http.StatusUnprocessableEntity, "empty_squad"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

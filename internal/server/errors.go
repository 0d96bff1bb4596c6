// Package server provides the HTTP API for the job aggregation service.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/sources"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, aggregate.ErrMissingID):
		return http.StatusBadRequest
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.Is(err, sources.ErrNotFound),
		errors.Is(err, aggregate.ErrNoDetailEndpoint):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

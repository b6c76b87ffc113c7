// Package server exposes the search core over HTTP and WebSocket.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/glimpse/internal/settings"
	"github.com/jonathan/glimpse/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, types.ErrEmptyQuery),
		errors.Is(err, settings.ErrInvalidAPIKey),
		errors.Is(err, settings.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, settings.ErrAPIKeyRequired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Package server provides the HTTP API for editing the invited list and
// generating invitation letters.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/roster"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrGenerationInProgress indicates another generation run holds the renderer
type ErrGenerationInProgress struct{}

func (e *ErrGenerationInProgress) Error() string {
	return "a generation run is already in progress"
}

// StatusClientClosedRequest is reported when the caller went away before a
// run finished.
const StatusClientClosedRequest = 499

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrNotFound
		busy        *ErrGenerationInProgress
		notInRoster *roster.NotInRosterError
		duplicate   *roster.DuplicateError
		generation  *letters.GenerationError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &validation), errors.As(err, &notInRoster):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &busy), errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &generation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Package apperror defines the error taxonomy shared by all handlers.
//
// "Not found" and "forbidden" are deliberately the same error so that a
// caller cannot distinguish a resource that does not exist from one they
// may not touch.
package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

// Status maps an error to its HTTP status code. Anything outside the
// taxonomy is treated as an internal failure.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to surface to the client. Internal
// errors are replaced with a generic message so storage details never
// leak.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

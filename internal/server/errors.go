package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/document-generator/internal/types"
)

// ErrBadRequest wraps a request body that could not be accepted.
type ErrBadRequest struct {
	Cause error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Cause)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// ErrBusy indicates the request gave up waiting for a render slot.
type ErrBusy struct {
	Cause error
}

func (e *ErrBusy) Error() string {
	return fmt.Sprintf("server busy: %v", e.Cause)
}

func (e *ErrBusy) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var badRequest *ErrBadRequest
	var busy *ErrBusy
	switch {
	case errors.As(err, &badRequest), errors.Is(err, types.ErrUnknownDocumentType):
		return http.StatusBadRequest
	case errors.As(err, &busy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorSummary is the short "error" field of a JSON error body.
func errorSummary(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusServiceUnavailable:
		return "Server busy"
	default:
		return "Failed to generate document"
	}
}

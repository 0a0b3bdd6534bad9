package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/document-generator/internal/rendering"
	"github.com/jonathan/document-generator/internal/types"
)

func TestErrBadRequest(t *testing.T) {
	err := &ErrBadRequest{Cause: errors.New("unexpected EOF")}
	assert.Equal(t, "invalid request: unexpected EOF", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrBusy(t *testing.T) {
	err := &ErrBusy{Cause: context.DeadlineExceeded}
	assert.Equal(t, "server busy: context deadline exceeded", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPStatus_UnknownDocumentType(t *testing.T) {
	err := fmt.Errorf("%w: %q", types.ErrUnknownDocumentType, "memo")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus_Default(t *testing.T) {
	err := fmt.Errorf("failed to render cv: %w", &rendering.RenderError{Message: "chrome crashed"})
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestErrorSummary(t *testing.T) {
	assert.Equal(t, "Invalid request", errorSummary(http.StatusBadRequest))
	assert.Equal(t, "Server busy", errorSummary(http.StatusServiceUnavailable))
	assert.Equal(t, "Failed to generate document", errorSummary(http.StatusInternalServerError))
}

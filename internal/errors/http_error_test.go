package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteHTTPError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHTTPError(w, ErrBadRequest("Invalid request body"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")

	w = httptest.NewRecorder()
	WriteHTTPError(w, fmt.Errorf("admin: %w", ErrUnauthorized("Unauthorized")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	WriteHTTPError(w, fmt.Errorf("%w: save: disk full", ErrPersistence))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestSentinelsWrap(t *testing.T) {
	err := fmt.Errorf("%w: duplicate vehicle name", ErrInvalidRoster)
	assert.True(t, stderrors.Is(err, ErrInvalidRoster))
	assert.False(t, stderrors.Is(err, ErrPersistence))
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "parkspot/internal/errors"
	"parkspot/internal/repository"
)

func TestWriteErrorMapsHTTPErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apierrors.ErrBadRequest("Please select a date"))

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Please select a date", body["error"])
}

func TestWriteErrorMapsWrappedHTTPErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("creating reservation: %w", apierrors.ErrUnauthorized("You must be logged in to reserve a parking spot")))
	assert.Equal(t, 401, rec.Code)
}

func TestWriteErrorMapsRepositorySentinels(t *testing.T) {
	// Bare and wrapped the way the repositories return them.
	rec := httptest.NewRecorder()
	writeError(rec, repository.ErrNotFound)
	assert.Equal(t, 404, rec.Code)

	rec = httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: spot 'A01' in complex 'Complex A'", repository.ErrNotFound))
	assert.Equal(t, 404, rec.Code)

	rec = httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: spot 'A01' already exists in complex 'Complex A'", repository.ErrDuplicateEntry))
	assert.Equal(t, 409, rec.Code)
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, 500, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

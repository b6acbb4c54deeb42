package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("bad input", nil), http.StatusBadRequest},
		{NewBadRequestError("bad request", nil), http.StatusBadRequest},
		{NewAuthError("who are you", nil), http.StatusUnauthorized},
		{NewForbiddenError("not yours", nil), http.StatusForbidden},
		{NewNotFoundError("gone", nil), http.StatusNotFound},
		{NewConflictError("taken", nil), http.StatusConflict},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
		{NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{NewMigrationError("migration failed", nil), http.StatusInternalServerError},
		{NewConfigError("bad config", nil), http.StatusInternalServerError},
		{NewExternalServiceError("upstream down", nil), http.StatusBadGateway},
		{NewAppError(UnknownError, "???", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestToResponse_HidesUnderlyingError(t *testing.T) {
	underlying := errors.New("pq: connection refused at 10.0.0.3")
	appErr := NewDatabaseError("failed to get user", underlying)

	resp := appErr.ToResponse()
	assert.False(t, resp.Success)
	assert.Equal(t, "failed to get user", resp.Message)
	assert.NotContains(t, resp.Message, "10.0.0.3")

	// The full detail stays available internally.
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	appErr := NewInternalError("wrapper", underlying)

	assert.ErrorIs(t, appErr, underlying)
}

func TestFromError(t *testing.T) {
	appErr := NewAuthError("nope", nil)

	got, ok := FromError(appErr)
	require.True(t, ok)
	assert.Equal(t, appErr, got)

	// Wrapped AppErrors are found through the chain.
	wrapped := fmt.Errorf("handler: %w", appErr)
	got, ok = FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("gone", nil)))
	assert.True(t, IsAuthError(NewAuthError("nope", nil)))
	assert.True(t, IsForbiddenError(NewForbiddenError("no", nil)))
	assert.True(t, IsValidationError(NewValidationError("bad", nil)))
	assert.True(t, IsConflictError(NewConflictError("dup", nil)))

	assert.False(t, IsNotFound(NewAuthError("nope", nil)))
	assert.False(t, IsAuthError(errors.New("plain")))
}

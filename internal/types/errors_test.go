package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Film", "abc")

	assert.Equal(t, ErrorCodeNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "Film with ID abc not found", err.Message)
	assert.Equal(t, "Film", err.Context["resource"])
	assert.Equal(t, "abc", err.Context["id"])
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid input", "rating must be at most 10", "reviewText is required")

	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Len(t, err.Violations, 2)
	assert.Equal(t, "rating must be at most 10", err.Details)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestCodeOfWrapped(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: genres.name")
	wrapped := fmt.Errorf("create genre: %w", NewConflictError("genre already exists", cause))

	assert.Equal(t, ErrorCodeConflict, CodeOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, ErrorCodeUnknown, CodeOf(cause))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestHTTPStatusFromErrorCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeValidation:   http.StatusBadRequest,
		ErrorCodeUnauthorized: http.StatusUnauthorized,
		ErrorCodeForbidden:    http.StatusForbidden,
		ErrorCodeNotFound:     http.StatusNotFound,
		ErrorCodeConflict:     http.StatusConflict,
		ErrorCodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, HTTPStatusFromErrorCode(code), string(code))
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Comment", "1")))
	assert.True(t, IsForbidden(NewForbiddenError("no")))
	assert.False(t, IsForbidden(NewUnauthorizedError("no")))
}

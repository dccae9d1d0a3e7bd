package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := internal.ErrBadRequest("bad input",
		internal.WithError(cause),
		internal.WithErrorCode("invalid_input"),
		internal.WithRequestID("req-1"),
	)

	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.Equal(t, "Bad Request", err.StatusText())
	assert.Equal(t, "invalid_input", err.ErrorCode)
	assert.Equal(t, "req-1", err.RequestID)
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, http.StatusForbidden, internal.ErrForbidden("x").Code)
	assert.Equal(t, http.StatusNotFound, internal.ErrNotFound("x").Code)
	assert.Equal(t, http.StatusInternalServerError, internal.ErrInternal("x").Code)
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("outer: %w", internal.ErrNotFound("gone"))
	he, ok := internal.AsHTTPError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "gone", he.Message)
	assert.True(t, internal.IsHTTPError(wrapped))

	_, ok = internal.AsHTTPError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, internal.IsHTTPError(nil))
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *internal.APIError
		code string
		data string
	}{
		{"value", internal.NewValueError("email", "Invalid email."), "value:invalid", "email"},
		{"not found", internal.NewNotFoundError("blog", "Blog not found."), "value:notfound", "blog"},
		{"permission", internal.NewPermissionError("Forbidden."), "permission:forbidden", "permission"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.data, tt.err.Data)
			assert.Equal(t, tt.err.Message, tt.err.Error())
			assert.Equal(t, map[string]any{"error": tt.code, "data": tt.data, "message": tt.err.Message}, tt.err.Payload())
		})
	}

	assert.Equal(t, "custom", internal.NewAPIError("custom", "", "").Error())

	ae, ok := internal.AsAPIError(fmt.Errorf("wrap: %w", internal.NewValueError("name", "")))
	require.True(t, ok)
	assert.Equal(t, "name", ae.Data)
}

package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("invalid input").WithCode("VAL001").WithDetail("field", "city").WithComponent("test-component")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "test-component", err.Component)
	assert.Equal(t, "city", err.Details["field"])
	assert.Equal(t, "invalid input", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrNotFound
	err := NewNotFoundError("destination").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "resource not found")
}

func TestPredicates(t *testing.T) {
	nf := NewNotFoundError("destination")
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsValidation(nf))
	assert.False(t, IsAuthentication(nf))
	assert.False(t, IsUnavailable(nf))

	val := NewValidationError("bad")
	assert.True(t, IsValidation(val))
	auth := NewAuthenticationError("bad")
	assert.True(t, IsAuthentication(auth))
	unavail := NewUnavailableError("store not connected")
	assert.True(t, IsUnavailable(unavail))
}

func TestPredicates_Sentinels(t *testing.T) {
	assert.True(t, IsNotFound(ErrDestinationNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", ErrDestinationNotFound)))
	assert.True(t, IsAuthentication(ErrInvalidPassphrase))
	assert.True(t, IsUnavailable(ErrServiceUnavailable))
	assert.False(t, IsNotFound(ErrInternalServer))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrDestinationNotFound, http.StatusNotFound},
		{ErrInvalidPassphrase, http.StatusUnauthorized},
		{ErrServiceUnavailable, http.StatusServiceUnavailable},
		{ErrInvalidInput, http.StatusBadRequest},
		{NewStorageError("write failed"), http.StatusInternalServerError},
		{fmt.Errorf("driver: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), "error %v", tc.err)
	}
}

func TestWrapError(t *testing.T) {
	base := fmt.Errorf("boom")
	wrapped := WrapError(base, "operation failed")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Equal(t, base, wrapped.Unwrap())

	already := NewValidationError("bad")
	assert.Equal(t, already, WrapError(already, "ignored"))
}

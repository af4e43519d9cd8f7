package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("insufficient permission")

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "FORBIDDEN", mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewUnauthorized("missing bearer token"))

	mapped := ToDomainError(wrapped)
	assert.Equal(t, "UNAUTHORIZED", mapped.Code)
	assert.Equal(t, http.StatusUnauthorized, mapped.HTTPStatus)
}

func TestToDomainErrorFallback(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestInvalidCredentialsShape(t *testing.T) {
	mapped := ToDomainError(NewInvalidCredentials())
	assert.Equal(t, "INVALID_CREDENTIALS", mapped.Code)
	assert.Equal(t, http.StatusUnauthorized, mapped.HTTPStatus)
	// The message never leaks which of userid/passkey was wrong.
	assert.Equal(t, "invalid userid or passkey", mapped.Message)
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrors_StatusAndCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrBroadcastNotFound.HTTPCode)
	assert.Equal(t, CodeNotFound, ErrContextNotFound.Code)
	assert.Equal(t, "catalog", ErrModuleNotFound.Domain)
	assert.Equal(t, http.StatusForbidden, ErrPermissionDenied.HTTPCode)
	assert.Equal(t, CodeForbidden, ErrPermissionDenied.Code)
}

func TestWithDetails_KeepsIdentity(t *testing.T) {
	detailed := ErrPermissionDenied.WithDetails(map[string]interface{}{"contextid": 3})

	assert.Nil(t, ErrPermissionDenied.Details, "исходная переменная не меняется")
	assert.True(t, errors.Is(detailed, ErrPermissionDenied))
	assert.False(t, errors.Is(detailed, ErrBroadcastNotFound))

	wrapped := fmt.Errorf("service: %w", detailed)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"contextid": 3}, appErr.Details)
}

func TestDatabaseError_Unwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := DatabaseError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
}

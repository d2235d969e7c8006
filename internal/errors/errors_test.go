package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing field", MissingField("Revenue is required"), http.StatusBadRequest},
		{"invalid type", InvalidType("Revenue must be a positive number"), http.StatusBadRequest},
		{"method", MethodNotAllowed("Method not allowed. Use POST."), http.StatusMethodNotAllowed},
		{"rate limited", New(TypeRateLimited, "Too many requests"), http.StatusTooManyRequests},
		{"internal", Internal("boom", nil), http.StatusInternalServerError},
		{"untyped", fmt.Errorf("plain"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("decode: %w", MissingField("State is required")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("rate: %w", InvalidType("Revenue must be a positive number"))
	assert.True(t, IsType(err, TypeInvalidType))
	assert.False(t, IsType(err, TypeMissingField))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeInternal))
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := Internal("decode body", cause)
	assert.Equal(t, "[INTERNAL_ERROR] decode body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)

	err = MissingField("Revenue is required").WithContext("field", "revenue")
	assert.Equal(t, "[MISSING_FIELD] Revenue is required", err.Error())
	assert.Equal(t, "revenue", err.Context["field"])
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(TypeConfig, "%s: duplicate key %s", "states", "CA")
	assert.Equal(t, "[CONFIG_ERROR] states: duplicate key CA", err.Error())
	assert.True(t, err.Is(TypeConfig))
	assert.False(t, err.Is(TypeInternal))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

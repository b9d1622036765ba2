package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidationError("bad field", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"wrapped conflict", fmt.Errorf("set field: %w", NewConflict("done", nil)), "CONFLICT", http.StatusConflict},
		{"fiber not found", fiber.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"fiber unknown client error", fiber.NewError(http.StatusTeapot, "tea"), "REQUEST_FAILED", http.StatusTeapot},
		{"plain error", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.Equal(t, tt.wantCode, got.Code)
			require.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}

	require.Nil(t, ToDomainError(nil))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("redis down")
	err := NewInternalError(cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "internal server error: redis down", err.Error())
}

package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"profile not found", ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{"wrapped missing profile", fmt.Errorf("dashboard: %w", ErrMissingProfile), http.StatusConflict, "MISSING_PROFILE"},
		{"plant not found", ErrPlantNotFound, http.StatusNotFound, "PLANT_NOT_FOUND"},
		{"invalid amount", ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"duplicate user", ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown", fmt.Errorf("connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.ToErrorResponse().Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalMessage(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.1:3306: i/o timeout"))
	assert.Equal(t, "internal server error", httpErr.Error())
}

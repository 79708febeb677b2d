package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fitpass/gym-checkin-system/internal/domain/types"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{types.ErrInvalidCredentials, http.StatusUnauthorized},
		{types.ErrInvalidToken, http.StatusUnauthorized},
		{types.ErrExpiredToken, http.StatusUnauthorized},
		{types.ErrResourceNotFound, http.StatusNotFound},
		{types.ErrDuplicateResource, http.StatusConflict},
		{types.ErrMaxNumberOfCheckIns, http.StatusConflict},
		{types.ErrCheckInAlreadyValidated, http.StatusConflict},
		{types.ErrMaxDistance, http.StatusUnprocessableEntity},
		{types.ErrLateCheckInValidation, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
		// Wrapped sentinels still map to their status.
		{fmt.Errorf("checkin: %w", types.ErrMaxDistance), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		if got := GetCode(tt.err); got != tt.want {
			t.Errorf("GetCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

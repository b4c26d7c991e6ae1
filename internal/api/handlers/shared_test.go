package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/testutil"
	"github.com/ndewijer/investment-goal-tracker/internal/validation"
)

func TestParseJSON(t *testing.T) {
	t.Run("decodes known fields", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPut, "/", `{"theme": "light"}`)

		got, err := parseJSON[request.UpdateConfigRequest](req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Theme == nil || *got.Theme != "light" {
			t.Errorf("Expected theme 'light', got %v", got.Theme)
		}
		if got.Currency != nil {
			t.Errorf("Expected currency unset, got %v", *got.Currency)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPut, "/", `{"font": "serif"}`)

		if _, err := parseJSON[request.UpdateConfigRequest](req); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("rejects empty body", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPut, "/", "")

		if _, err := parseJSON[request.UpdateConfigRequest](req); err == nil {
			t.Error("Expected error for empty body")
		}
	})
}

// TestRespondServiceError tests the mapping from service errors to status codes.
//
// WHY: Handlers rely on this single mapping, so a wrapped sentinel that falls
// through to 500 would turn user mistakes into server errors on every endpoint.
func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", &validation.Error{Fields: map[string]string{"goal": "too small"}}, http.StatusBadRequest},
		{"invalid month", fmt.Errorf("%w: 2024-13", apperrors.ErrInvalidMonth), http.StatusBadRequest},
		{"goal not found", apperrors.ErrGoalNotFound, http.StatusNotFound},
		{"month not in schedule", fmt.Errorf("%w: 2030-01", apperrors.ErrMonthNotInSchedule), http.StatusNotFound},
		{"negative residue", fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeSchedule, allocator.ErrNegativeResidue), http.StatusUnprocessableEntity},
		{"unsupported policy", fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeSchedule, allocator.ErrUnsupportedPolicy), http.StatusBadRequest},
		{"storage failure", fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveGoal, errors.New("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			respondServiceError(w, tt.err, "fallback")

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/api/response"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
	"github.com/ndewijer/investment-goal-tracker/internal/validation"
)

// maxBodyBytes caps request bodies. Every payload here is a handful of fields.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode request body: %w", err)
	}
	return v, nil
}

// respondServiceError maps a service error to a status code. fallback is the
// message used for unexpected failures.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, apperrors.ErrInvalidMonth):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMonth.Error(), err.Error())
	case errors.Is(err, apperrors.ErrGoalNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrGoalNotFound.Error(), nil)
	case errors.Is(err, apperrors.ErrMonthNotInSchedule):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrMonthNotInSchedule.Error(), err.Error())
	case errors.Is(err, allocator.ErrNegativeResidue):
		response.RespondError(w, http.StatusUnprocessableEntity, allocator.ErrNegativeResidue.Error(), err.Error())
	case service.IsAllocationError(err):
		response.RespondError(w, http.StatusBadRequest, "invalid allocation request", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

package handlers

import (
	"net/http"

	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/api/response"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
)

// ScheduleHandler serves schedule computations that are not stored.
type ScheduleHandler struct {
	goalService *service.GoalService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(goalService *service.GoalService) *ScheduleHandler {
	return &ScheduleHandler{goalService: goalService}
}

// Preview computes a schedule with running totals.
//
// Endpoint: POST /api/schedule/preview
// Request Body: ScheduleRequest (goal, startDate, endDate, policy, optional roundingIncrement)
// Response: 200 OK with SchedulePreview
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *ScheduleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ScheduleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	preview, err := h.goalService.Preview(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to compute schedule")
		return
	}

	response.RespondJSON(w, http.StatusOK, preview)
}

// Compare computes the fixed and growing schedules side by side. policy is ignored.
//
// Endpoint: POST /api/schedule/compare
// Response: 200 OK with PolicyComparison
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *ScheduleHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ScheduleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	comparison, err := h.goalService.ComparePolicies(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to compare policies")
		return
	}

	response.RespondJSON(w, http.StatusOK, comparison)
}

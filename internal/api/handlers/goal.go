package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/api/response"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
)

// GoalHandler handles HTTP requests for the stored goal.
// It parses requests and delegates business logic to the goalService.
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler with the provided service dependency.
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// GetGoal returns the stored goal with its schedule and completed months.
//
// Endpoint: GET /api/goal
// Response: 200 OK with GoalProfile
// Error: 404 Not Found if no goal has been set up
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	profile, err := h.goalService.GetGoal(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGoal.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// CreateGoal sets up the goal, replacing any existing one.
//
// Endpoint: POST /api/goal
// Request Body: CreateGoalRequest (name, goal, startDate, endDate, policy, optional roundingIncrement)
// Response: 201 Created with GoalProfile
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the goal cannot be stored
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateGoalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	profile, err := h.goalService.SetupGoal(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create goal")
		return
	}

	response.RespondJSON(w, http.StatusCreated, profile)
}

// UpdateGoal edits the goal. Changing allocation fields recomputes the
// schedule and clears completed months.
//
// Endpoint: PUT /api/goal
// Request Body: UpdateGoalRequest (all fields optional)
// Response: 200 OK with GoalProfile
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if no goal has been set up
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateGoalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	profile, err := h.goalService.UpdateGoal(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to update goal")
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// DeleteGoal removes the stored goal.
//
// Endpoint: DELETE /api/goal
// Response: 204 No Content
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goalService.ClearGoal(r.Context()); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToClearData.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Progress returns totals and the month list for the dashboard.
//
// Endpoint: GET /api/goal/progress
// Response: 200 OK with GoalProgress
// Error: 404 Not Found if no goal has been set up
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.goalService.Progress(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGoal.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, progress)
}

// CompleteMonth marks a month as invested.
//
// Endpoint: POST /api/goal/months/{month}/complete
// Response: 200 OK with GoalProfile
// Error: 400 Bad Request if month is malformed (validated by middleware)
// Error: 404 Not Found if no goal exists or month is not in the schedule
func (h *GoalHandler) CompleteMonth(w http.ResponseWriter, r *http.Request) {
	h.setMonth(w, r, true)
}

// UncompleteMonth clears the invested mark of a month.
//
// Endpoint: DELETE /api/goal/months/{month}/complete
func (h *GoalHandler) UncompleteMonth(w http.ResponseWriter, r *http.Request) {
	h.setMonth(w, r, false)
}

func (h *GoalHandler) setMonth(w http.ResponseWriter, r *http.Request, completed bool) {
	month := chi.URLParam(r, "month")

	profile, err := h.goalService.SetMonthCompleted(r.Context(), month, completed)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveGoal.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// ToggleMonth flips the invested mark of a month.
//
// Endpoint: POST /api/goal/months/{month}/toggle
// Response: 200 OK with GoalProfile
func (h *GoalHandler) ToggleMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	profile, err := h.goalService.ToggleMonth(r.Context(), month)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveGoal.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// ClearAllData removes the goal, notification settings and app config.
//
// Endpoint: DELETE /api/data
// Response: 204 No Content
func (h *GoalHandler) ClearAllData(w http.ResponseWriter, r *http.Request) {
	if err := h.goalService.ClearAll(r.Context()); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToClearData.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

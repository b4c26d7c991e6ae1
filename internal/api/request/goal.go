package request

import "github.com/shopspring/decimal"

// ScheduleRequest is the body of the preview and compare endpoints.
// Policy is ignored by compare.
type ScheduleRequest struct {
	Goal              decimal.Decimal `json:"goal"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Policy            string          `json:"policy"`
	RoundingIncrement *int64          `json:"roundingIncrement,omitempty"`
}

// CreateGoalRequest represents the request body for setting up the goal
type CreateGoalRequest struct {
	Name              string          `json:"name"`
	Goal              decimal.Decimal `json:"goal"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Policy            string          `json:"policy"`
	RoundingIncrement *int64          `json:"roundingIncrement,omitempty"`
}

// ScheduleRequest returns the allocation parameters of the request.
func (r CreateGoalRequest) ScheduleRequest() ScheduleRequest {
	return ScheduleRequest{
		Goal:              r.Goal,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		Policy:            r.Policy,
		RoundingIncrement: r.RoundingIncrement,
	}
}

type UpdateGoalRequest struct {
	Name              *string          `json:"name,omitempty"`
	Goal              *decimal.Decimal `json:"goal,omitempty"`
	StartDate         *string          `json:"startDate,omitempty"`
	EndDate           *string          `json:"endDate,omitempty"`
	Policy            *string          `json:"policy,omitempty"`
	RoundingIncrement *int64           `json:"roundingIncrement,omitempty"`
}

// ChangesSchedule reports whether applying the update requires a new schedule.
func (r UpdateGoalRequest) ChangesSchedule() bool {
	return r.Goal != nil || r.StartDate != nil || r.EndDate != nil || r.Policy != nil || r.RoundingIncrement != nil
}

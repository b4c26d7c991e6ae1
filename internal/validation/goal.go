package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
)

// Goal bounds accepted from clients.
var (
	MinGoal = decimal.NewFromInt(100)
	MaxGoal = decimal.NewFromInt(1_000_000_000)
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// ValidateCreateGoal validates a goal setup request.
//
// Required fields:
//   - name: 2 to 100 characters after trimming
//   - goal: between 100 and 1,000,000,000
//   - startDate, endDate: YYYY-MM-DD or RFC3339, end after start
//   - policy: fixed or growing
//
// roundingIncrement is optional and must be at least 1 when set.
func ValidateCreateGoal(req request.CreateGoalRequest) error {
	errors := make(map[string]string)

	validateName(errors, req.Name)
	validateSchedule(errors, req.ScheduleRequest(), true)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateGoal validates the fields present in an edit request.
// Date ordering is checked by the caller once the edit is merged with the stored goal.
func ValidateUpdateGoal(req request.UpdateGoalRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		validateName(errors, *req.Name)
	}
	if req.Goal != nil {
		validateGoalAmount(errors, *req.Goal)
	}
	if req.StartDate != nil {
		if _, err := ParseDate(*req.StartDate); err != nil {
			errors["startDate"] = err.Error()
		}
	}
	if req.EndDate != nil {
		if _, err := ParseDate(*req.EndDate); err != nil {
			errors["endDate"] = err.Error()
		}
	}
	if req.Policy != nil {
		validatePolicy(errors, *req.Policy)
	}
	if req.RoundingIncrement != nil && *req.RoundingIncrement < 1 {
		errors["roundingIncrement"] = "roundingIncrement must be at least 1"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateScheduleRequest validates preview and compare requests.
// Compare passes requirePolicy=false since it computes both policies.
func ValidateScheduleRequest(req request.ScheduleRequest, requirePolicy bool) error {
	errors := make(map[string]string)

	validateSchedule(errors, req, requirePolicy)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateName(errors map[string]string, name string) {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n == 0:
		errors["name"] = "name is required"
	case n < minNameLength:
		errors["name"] = fmt.Sprintf("name must be at least %d characters", minNameLength)
	case n > maxNameLength:
		errors["name"] = fmt.Sprintf("name must be %d characters or less", maxNameLength)
	}
}

func validateGoalAmount(errors map[string]string, goal decimal.Decimal) {
	if goal.LessThan(MinGoal) {
		errors["goal"] = fmt.Sprintf("goal must be at least %s", MinGoal)
	} else if goal.GreaterThan(MaxGoal) {
		errors["goal"] = fmt.Sprintf("goal must be %s or less", MaxGoal)
	}
}

func validatePolicy(errors map[string]string, policy string) {
	if strings.TrimSpace(policy) == "" {
		errors["policy"] = "policy is required"
	} else if _, err := allocator.ParsePolicy(policy); err != nil {
		errors["policy"] = fmt.Sprintf("invalid policy: %s", policy)
	}
}

func validateSchedule(errors map[string]string, req request.ScheduleRequest, requirePolicy bool) {
	validateGoalAmount(errors, req.Goal)

	start, startErr := ParseDate(req.StartDate)
	if strings.TrimSpace(req.StartDate) == "" {
		errors["startDate"] = "startDate is required"
	} else if startErr != nil {
		errors["startDate"] = startErr.Error()
	}

	end, endErr := ParseDate(req.EndDate)
	if strings.TrimSpace(req.EndDate) == "" {
		errors["endDate"] = "endDate is required"
	} else if endErr != nil {
		errors["endDate"] = endErr.Error()
	}

	if startErr == nil && endErr == nil && !end.After(start) {
		errors["endDate"] = "endDate must be after startDate"
	}

	if requirePolicy {
		validatePolicy(errors, req.Policy)
	}

	if req.RoundingIncrement != nil && *req.RoundingIncrement < 1 {
		errors["roundingIncrement"] = "roundingIncrement must be at least 1"
	}
}

package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
)

// GoalProfile is the single stored savings goal together with its schedule
// and the months the user has marked as invested.
type GoalProfile struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Goal              decimal.Decimal    `json:"goal"`
	StartDate         time.Time          `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
	Policy            allocator.Policy   `json:"policy"`
	RoundingIncrement int64              `json:"roundingIncrement"`
	Schedule          allocator.Schedule `json:"schedule"`
	Adjusted          bool               `json:"adjusted"`
	CompletedMonths   []string           `json:"completedMonths"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// MarshalJSON writes goal as a bare number, like the schedule amounts.
// Decoding accepts both numbers and quoted strings.
func (p GoalProfile) MarshalJSON() ([]byte, error) {
	type profile GoalProfile
	return json.Marshal(struct {
		profile
		Goal json.Number `json:"goal"`
	}{
		profile: profile(p),
		Goal:    json.Number(p.Goal.String()),
	})
}

// IsCompleted reports whether month has been marked as invested.
func (p GoalProfile) IsCompleted(month string) bool {
	for _, m := range p.CompletedMonths {
		if m == month {
			return true
		}
	}
	return false
}

// MonthStatus is one row of the dashboard month list.
type MonthStatus struct {
	Month     string          `json:"month"`
	Amount    decimal.Decimal `json:"amount"`
	Completed bool            `json:"completed"`
}

// GoalProgress is the dashboard view of a stored goal.
type GoalProgress struct {
	Name            string          `json:"name"`
	Goal            decimal.Decimal `json:"goal"`
	TotalInvested   decimal.Decimal `json:"totalInvested"`
	ProgressPercent float64         `json:"progressPercent"`
	Remaining       decimal.Decimal `json:"remaining"`
	RemainingMonths int             `json:"remainingMonths"`
	CurrentMonth    string          `json:"currentMonth"`
	Months          []MonthStatus   `json:"months"`
}

// SchedulePreview is a computed but unsaved schedule.
type SchedulePreview struct {
	Policy     allocator.Policy         `json:"policy"`
	MonthCount int                      `json:"monthCount"`
	Schedule   allocator.Schedule       `json:"schedule"`
	Preview    []allocator.PreviewValue `json:"preview"`
	Adjusted   bool                     `json:"adjusted"`
	// MonthlyEstimate is only set for the fixed policy.
	MonthlyEstimate *decimal.Decimal `json:"monthlyEstimate,omitempty"`
}

// PolicyComparison shows the same goal under both allocation policies.
type PolicyComparison struct {
	Fixed   SchedulePreview `json:"fixed"`
	Growing SchedulePreview `json:"growing"`
}

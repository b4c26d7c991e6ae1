package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
)

// ProfileBuilder provides a fluent interface for storing test goal profiles.
// The schedule is computed by the allocator from the builder's parameters.
//
// Example usage:
//
//	// 2000 over Jan-Apr 2024, fixed policy
//	profile := testutil.NewProfile().Build(t, db)
//
//	// Customized profile
//	profile := testutil.NewProfile().
//	    WithGoal(12000).
//	    WithDates("2024-01-01", "2024-12-01").
//	    WithPolicy(allocator.Growing).
//	    WithCompleted("2024-01", "2024-02").
//	    Build(t, db)
type ProfileBuilder struct {
	Name      string
	Goal      decimal.Decimal
	StartDate string
	EndDate   string
	Policy    allocator.Policy
	Increment int64
	Completed []string
}

// NewProfile creates a ProfileBuilder with sensible defaults.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{
		Name:      "Test Goal",
		Goal:      decimal.NewFromInt(2000),
		StartDate: "2024-01-01",
		EndDate:   "2024-04-01",
		Policy:    allocator.Fixed,
		Increment: allocator.DefaultRoundingIncrement,
	}
}

// WithName sets a custom name.
func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.Name = name
	return b
}

// WithGoal sets the goal amount.
func (b *ProfileBuilder) WithGoal(goal int64) *ProfileBuilder {
	b.Goal = decimal.NewFromInt(goal)
	return b
}

// WithDates sets start and end dates in YYYY-MM-DD form.
func (b *ProfileBuilder) WithDates(start, end string) *ProfileBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

// WithPolicy sets the allocation policy.
func (b *ProfileBuilder) WithPolicy(p allocator.Policy) *ProfileBuilder {
	b.Policy = p
	return b
}

// WithIncrement sets the rounding increment.
func (b *ProfileBuilder) WithIncrement(inc int64) *ProfileBuilder {
	b.Increment = inc
	return b
}

// WithCompleted marks months as already invested.
func (b *ProfileBuilder) WithCompleted(months ...string) *ProfileBuilder {
	b.Completed = months
	return b
}

// Build computes the schedule, stores the profile and returns it.
func (b *ProfileBuilder) Build(t *testing.T, db *sql.DB) model.GoalProfile {
	t.Helper()

	start := mustDate(t, b.StartDate)
	end := mustDate(t, b.EndDate)

	res, err := allocator.ComputeSchedule(allocator.Request{
		Goal:              b.Goal,
		StartDate:         start,
		EndDate:           end,
		Policy:            b.Policy,
		RoundingIncrement: b.Increment,
	})
	if err != nil {
		t.Fatalf("Failed to compute test schedule: %v", err)
	}

	completed := b.Completed
	if completed == nil {
		completed = []string{}
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := model.GoalProfile{
		ID:                uuid.NewString(),
		Name:              b.Name,
		Goal:              b.Goal,
		StartDate:         start,
		EndDate:           end,
		Policy:            b.Policy,
		RoundingIncrement: b.Increment,
		Schedule:          res.Schedule,
		Adjusted:          res.Adjusted,
		CompletedMonths:   completed,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := NewTestProfileRepository(t, db).Save(context.Background(), profile); err != nil {
		t.Fatalf("Failed to store test profile: %v", err)
	}
	return profile
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Invalid test date %q: %v", s, err)
	}
	return d
}

// Package allocator distributes a savings goal across the calendar months of a
// date range. Every schedule it produces sums exactly to the goal: all months
// but the last are rounded to a friendly increment, and the last month absorbs
// the rounding drift.
//
// The package is pure. It performs no I/O and holds no state, so its functions
// are safe for concurrent use.
package allocator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRoundingIncrement is used when a Request leaves RoundingIncrement unset.
const DefaultRoundingIncrement int64 = 50

// Allocation errors. All are fatal to the request; none are retryable.
var (
	// ErrInvalidGoal indicates a goal that is zero or negative.
	ErrInvalidGoal = errors.New("goal must be positive")

	// ErrInvalidDateRange indicates an end date that falls in a month before the start date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnsupportedPolicy indicates an unknown policy tag. This is a caller bug, not user input.
	ErrUnsupportedPolicy = errors.New("unsupported allocation policy")

	// ErrInvalidRoundingIncrement indicates a negative rounding increment.
	ErrInvalidRoundingIncrement = errors.New("rounding increment must be positive")

	// ErrNegativeResidue indicates that no rounding of the leading months kept
	// the final contribution non-negative.
	ErrNegativeResidue = errors.New("rounded contributions exceed goal")
)

// Policy selects how a goal is spread across months.
type Policy string

const (
	// Fixed assigns the same rounded amount to every month except the last.
	Fixed Policy = "fixed"
	// Growing assigns linearly increasing rounded amounts, ending near 1.5x the average.
	Growing Policy = "growing"
)

// ParsePolicy converts a policy tag into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case Fixed, Growing:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPolicy, s)
	}
}

// Request is the input to ComputeSchedule.
type Request struct {
	Goal              decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	Policy            Policy
	RoundingIncrement int64 // zero means DefaultRoundingIncrement
}

// Result is the output of ComputeSchedule.
type Result struct {
	Schedule Schedule `json:"schedule"`
	// Adjusted is set when nearest rounding overshot the goal and the leading
	// months were rounded down to keep the final contribution non-negative.
	Adjusted bool `json:"adjusted"`
}

var (
	growthCeiling = decimal.NewFromFloat(1.5)
	three         = decimal.NewFromInt(3)
)

// ComputeSchedule converts a goal, date range and policy into a month-by-month
// contribution schedule. The result has one entry per calendar month from the
// start month to the end month inclusive, and its amounts sum to the goal exactly.
func ComputeSchedule(req Request) (Result, error) {
	if !req.Goal.IsPositive() {
		return Result{}, ErrInvalidGoal
	}

	increment := req.RoundingIncrement
	if increment == 0 {
		increment = DefaultRoundingIncrement
	}
	if increment < 0 {
		return Result{}, ErrInvalidRoundingIncrement
	}

	n := MonthCount(req.StartDate, req.EndDate)
	if n < 1 {
		return Result{}, fmt.Errorf("%w: end month %s is before start month %s",
			ErrInvalidDateRange, MonthKey(req.EndDate), MonthKey(req.StartDate))
	}

	if req.Policy != Fixed && req.Policy != Growing {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedPolicy, req.Policy)
	}

	inc := decimal.NewFromInt(increment)
	nearest := func(v decimal.Decimal) decimal.Decimal { return roundTo(v, inc) }
	down := func(v decimal.Decimal) decimal.Decimal { return truncateTo(v, inc) }

	// Rounding to nearest can push the leading months past the goal. When it
	// does, the step and then the base amount are rounded down instead.
	attempts := []struct{ base, step rounder }{
		{nearest, nearest},
		{nearest, down},
		{down, down},
	}

	keys := monthKeys(req.StartDate, n)
	for i, mode := range attempts {
		leading := leadingAmounts(req.Policy, req.Goal, n, mode.base, mode.step)

		residue := req.Goal
		for _, amount := range leading {
			residue = residue.Sub(amount)
		}
		if residue.IsNegative() {
			continue
		}

		schedule := make(Schedule, n)
		for m, amount := range leading {
			schedule[m] = Entry{Month: keys[m], Amount: amount}
		}
		schedule[n-1] = Entry{Month: keys[n-1], Amount: residue}
		return Result{Schedule: schedule, Adjusted: i > 0}, nil
	}

	return Result{}, fmt.Errorf("%w: goal %s over %d months", ErrNegativeResidue, req.Goal.String(), n)
}

// rounder maps a raw amount onto a multiple of the rounding increment.
type rounder func(decimal.Decimal) decimal.Decimal

// leadingAmounts returns the n-1 amounts preceding the reconciliation month.
//
// Fixed repeats base(goal/n). Growing starts at base(targetLast/3), where
// targetLast is 1.5x the average, and adds step((targetLast-first)/(n-1)) each month.
func leadingAmounts(policy Policy, goal decimal.Decimal, n int, base, step rounder) []decimal.Decimal {
	if n == 1 {
		return nil
	}
	avg := goal.Div(decimal.NewFromInt(int64(n)))

	amounts := make([]decimal.Decimal, n-1)
	switch policy {
	case Fixed:
		rounded := base(avg)
		for i := range amounts {
			amounts[i] = rounded
		}
	case Growing:
		targetLast := avg.Mul(growthCeiling)
		first := base(targetLast.Div(three))
		increment := step(targetLast.Sub(first).Div(decimal.NewFromInt(int64(n - 1))))
		for i := range amounts {
			amounts[i] = first.Add(increment.Mul(decimal.NewFromInt(int64(i))))
		}
	}
	return amounts
}

// roundTo rounds value to the nearest multiple of increment, halves away from zero.
func roundTo(value, increment decimal.Decimal) decimal.Decimal {
	return value.Div(increment).Round(0).Mul(increment)
}

// truncateTo rounds value toward zero to a multiple of increment.
func truncateTo(value, increment decimal.Decimal) decimal.Decimal {
	return value.Div(increment).Truncate(0).Mul(increment)
}

// MonthlyEstimate returns the amount a Fixed request assigns to every month
// but the last. The second value is false for other policies or invalid requests.
func MonthlyEstimate(req Request) (decimal.Decimal, bool) {
	if req.Policy != Fixed {
		return decimal.Zero, false
	}
	res, err := ComputeSchedule(req)
	if err != nil {
		return decimal.Zero, false
	}
	return res.Schedule[0].Amount, true
}

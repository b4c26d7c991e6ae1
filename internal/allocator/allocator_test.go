package allocator_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func amounts(s allocator.Schedule) []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Amount.String()
	}
	return out
}

// TestComputeSchedule_Scenarios checks the worked examples end to end.
//
// WHY: These are the reference numbers users see during onboarding. Any drift
// in rounding or reconciliation shows up here first.
func TestComputeSchedule_Scenarios(t *testing.T) {
	t.Run("fixed over three months", func(t *testing.T) {
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:              decimal.NewFromInt(1000),
			StartDate:         date(t, "2024-01-15"),
			EndDate:           date(t, "2024-03-15"),
			Policy:            allocator.Fixed,
			RoundingIncrement: 50,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}

		wantMonths := []string{"2024-01", "2024-02", "2024-03"}
		if got := res.Schedule.Months(); !reflect.DeepEqual(got, wantMonths) {
			t.Errorf("Expected months %v, got %v", wantMonths, got)
		}
		wantAmounts := []string{"350", "350", "300"}
		if got := amounts(res.Schedule); !reflect.DeepEqual(got, wantAmounts) {
			t.Errorf("Expected amounts %v, got %v", wantAmounts, got)
		}
	})

	t.Run("growing over four months", func(t *testing.T) {
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:              decimal.NewFromInt(2000),
			StartDate:         date(t, "2024-01-01"),
			EndDate:           date(t, "2024-04-01"),
			Policy:            allocator.Growing,
			RoundingIncrement: 50,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}

		wantAmounts := []string{"250", "400", "550", "800"}
		if got := amounts(res.Schedule); !reflect.DeepEqual(got, wantAmounts) {
			t.Errorf("Expected amounts %v, got %v", wantAmounts, got)
		}
	})

	t.Run("zero increment falls back to default", func(t *testing.T) {
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:      decimal.NewFromInt(1000),
			StartDate: date(t, "2024-01-15"),
			EndDate:   date(t, "2024-03-15"),
			Policy:    allocator.Fixed,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		if res.Schedule[0].Amount.String() != "350" {
			t.Errorf("Expected first amount 350, got %s", res.Schedule[0].Amount)
		}
	})

	t.Run("custom increment", func(t *testing.T) {
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:              decimal.NewFromInt(1000),
			StartDate:         date(t, "2024-01-01"),
			EndDate:           date(t, "2024-03-01"),
			Policy:            allocator.Fixed,
			RoundingIncrement: 10,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		wantAmounts := []string{"330", "330", "340"}
		if got := amounts(res.Schedule); !reflect.DeepEqual(got, wantAmounts) {
			t.Errorf("Expected amounts %v, got %v", wantAmounts, got)
		}
	})

	t.Run("cents goal reconciles exactly", func(t *testing.T) {
		goal := decimal.RequireFromString("1234.56")
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:      goal,
			StartDate: date(t, "2024-01-01"),
			EndDate:   date(t, "2024-06-01"),
			Policy:    allocator.Fixed,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		if !res.Schedule.Total().Equal(goal) {
			t.Errorf("Expected total %s, got %s", goal, res.Schedule.Total())
		}
		if last := res.Schedule[len(res.Schedule)-1].Amount.String(); last != "234.56" {
			t.Errorf("Expected reconciliation amount 234.56, got %s", last)
		}
	})

	t.Run("month keys cross a year boundary", func(t *testing.T) {
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:      decimal.NewFromInt(1200),
			StartDate: date(t, "2024-11-30"),
			EndDate:   date(t, "2025-02-28"),
			Policy:    allocator.Fixed,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
		if got := res.Schedule.Months(); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected months %v, got %v", want, got)
		}
	})
}

// TestComputeSchedule_Properties sweeps goals, spans and policies.
//
// WHY: The schedule is persisted and summed by the dashboard. The exact-sum,
// month-count, uniformity and monotonicity guarantees must hold for every
// valid input, not just the documented examples.
func TestComputeSchedule_Properties(t *testing.T) {
	goals := []string{"100", "999.99", "1000", "2000", "12345.67", "50000", "1000000"}
	spans := []int{1, 2, 3, 4, 7, 12, 24, 60}
	start := date(t, "2024-01-31")

	for _, policy := range []allocator.Policy{allocator.Fixed, allocator.Growing} {
		for _, g := range goals {
			for _, months := range spans {
				goal := decimal.RequireFromString(g)
				end := start.AddDate(0, months-1, -20)
				req := allocator.Request{
					Goal:      goal,
					StartDate: start,
					EndDate:   end,
					Policy:    policy,
				}

				res, err := allocator.ComputeSchedule(req)
				if err != nil {
					t.Fatalf("%s goal=%s months=%d: unexpected error: %v", policy, g, months, err)
				}
				s := res.Schedule

				if len(s) != allocator.MonthCount(start, end) {
					t.Errorf("%s goal=%s months=%d: expected %d entries, got %d",
						policy, g, months, allocator.MonthCount(start, end), len(s))
					continue
				}
				if !s.Total().Equal(goal) {
					t.Errorf("%s goal=%s months=%d: expected total %s, got %s", policy, g, months, goal, s.Total())
				}
				if s[len(s)-1].Amount.IsNegative() {
					t.Errorf("%s goal=%s months=%d: negative reconciliation %s", policy, g, months, s[len(s)-1].Amount)
				}
				if len(s) == 1 && !s[0].Amount.Equal(goal) {
					t.Errorf("%s goal=%s: single month should carry the goal, got %s", policy, g, s[0].Amount)
				}

				fifty := decimal.NewFromInt(50)
				for i := 0; i < len(s)-1; i++ {
					if !s[i].Amount.Mod(fifty).IsZero() {
						t.Errorf("%s goal=%s months=%d: month %d amount %s is not a multiple of 50",
							policy, g, months, i, s[i].Amount)
					}
					if i == 0 {
						continue
					}
					switch policy {
					case allocator.Fixed:
						if !s[i].Amount.Equal(s[0].Amount) {
							t.Errorf("fixed goal=%s months=%d: month %d amount %s differs from %s",
								g, months, i, s[i].Amount, s[0].Amount)
						}
					case allocator.Growing:
						if s[i].Amount.LessThan(s[i-1].Amount) {
							t.Errorf("growing goal=%s months=%d: month %d amount %s below previous %s",
								g, months, i, s[i].Amount, s[i-1].Amount)
						}
					}
				}
			}
		}
	}
}

// TestComputeSchedule_SingleMonth covers spans that stay inside one month.
//
// WHY: The single-month case bypasses the rounding path entirely; the one
// entry must carry the whole goal regardless of policy or day ordering.
func TestComputeSchedule_SingleMonth(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"same day", "2024-05-10", "2024-05-10"},
		{"later day", "2024-05-01", "2024-05-31"},
		{"earlier day same month", "2024-05-20", "2024-05-02"},
	}

	for _, tc := range tests {
		for _, policy := range []allocator.Policy{allocator.Fixed, allocator.Growing} {
			t.Run(tc.name+"/"+string(policy), func(t *testing.T) {
				goal := decimal.RequireFromString("777.77")
				res, err := allocator.ComputeSchedule(allocator.Request{
					Goal:      goal,
					StartDate: date(t, tc.start),
					EndDate:   date(t, tc.end),
					Policy:    policy,
				})
				if err != nil {
					t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
				}
				if len(res.Schedule) != 1 {
					t.Fatalf("Expected 1 entry, got %d", len(res.Schedule))
				}
				if res.Schedule[0].Month != "2024-05" {
					t.Errorf("Expected month 2024-05, got %s", res.Schedule[0].Month)
				}
				if !res.Schedule[0].Amount.Equal(goal) {
					t.Errorf("Expected amount %s, got %s", goal, res.Schedule[0].Amount)
				}
			})
		}
	}
}

// TestComputeSchedule_Errors checks input rejection.
//
// WHY: Corrupted persisted data can reach the allocator from the edit flow;
// it must fail loudly with a matchable error instead of producing a partial plan.
func TestComputeSchedule_Errors(t *testing.T) {
	base := allocator.Request{
		Goal:      decimal.NewFromInt(1000),
		StartDate: date(t, "2024-03-01"),
		EndDate:   date(t, "2024-06-01"),
		Policy:    allocator.Fixed,
	}

	tests := []struct {
		name   string
		modify func(r *allocator.Request)
		want   error
	}{
		{"zero goal", func(r *allocator.Request) { r.Goal = decimal.Zero }, allocator.ErrInvalidGoal},
		{"negative goal", func(r *allocator.Request) { r.Goal = decimal.NewFromInt(-5) }, allocator.ErrInvalidGoal},
		{"end month before start month", func(r *allocator.Request) { r.EndDate = date(t, "2024-02-28") }, allocator.ErrInvalidDateRange},
		{"end year before start year", func(r *allocator.Request) { r.EndDate = date(t, "2023-12-01") }, allocator.ErrInvalidDateRange},
		{"unknown policy", func(r *allocator.Request) { r.Policy = "exponential" }, allocator.ErrUnsupportedPolicy},
		{"empty policy", func(r *allocator.Request) { r.Policy = "" }, allocator.ErrUnsupportedPolicy},
		{"negative increment", func(r *allocator.Request) { r.RoundingIncrement = -50 }, allocator.ErrInvalidRoundingIncrement},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.modify(&req)

			res, err := allocator.ComputeSchedule(req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Expected error %v, got %v", tc.want, err)
			}
			if res.Schedule != nil {
				t.Errorf("Expected no schedule on error, got %v", res.Schedule)
			}
		})
	}
}

// TestComputeSchedule_RoundingFallback covers goals where nearest rounding
// overshoots before the reconciliation month.
//
// WHY: A negative final contribution is meaningless to the user. The allocator
// rounds down instead and flags the result so callers can explain the plan.
func TestComputeSchedule_RoundingFallback(t *testing.T) {
	t.Run("fixed rounds monthly value down", func(t *testing.T) {
		// 160 / 5 = 32 rounds to 50, and 4 x 50 already exceeds 160.
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:      decimal.NewFromInt(160),
			StartDate: date(t, "2024-03-01"),
			EndDate:   date(t, "2024-07-01"),
			Policy:    allocator.Fixed,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		if !res.Adjusted {
			t.Error("Expected result to be flagged as adjusted")
		}
		want := []string{"0", "0", "0", "0", "160"}
		if got := amounts(res.Schedule); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected amounts %v, got %v", want, got)
		}
	})

	t.Run("growing rounds step down over long spans", func(t *testing.T) {
		// Nearest rounding gives first=8350 and step=300, which overshoots by 5950.
		goal := decimal.NewFromInt(1000000)
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:      goal,
			StartDate: date(t, "2024-01-01"),
			EndDate:   date(t, "2028-12-01"),
			Policy:    allocator.Growing,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		if !res.Adjusted {
			t.Error("Expected result to be flagged as adjusted")
		}
		if len(res.Schedule) != 60 {
			t.Fatalf("Expected 60 entries, got %d", len(res.Schedule))
		}
		if res.Schedule[0].Amount.String() != "8350" {
			t.Errorf("Expected first amount 8350, got %s", res.Schedule[0].Amount)
		}
		if res.Schedule[1].Amount.String() != "8600" {
			t.Errorf("Expected second amount 8600, got %s", res.Schedule[1].Amount)
		}
		if last := res.Schedule[59].Amount.String(); last != "79600" {
			t.Errorf("Expected reconciliation amount 79600, got %s", last)
		}
		if !res.Schedule.Total().Equal(goal) {
			t.Errorf("Expected total %s, got %s", goal, res.Schedule.Total())
		}
	})

	t.Run("regular schedules are not flagged", func(t *testing.T) {
		res, err := allocator.ComputeSchedule(allocator.Request{
			Goal:      decimal.NewFromInt(2000),
			StartDate: date(t, "2024-01-01"),
			EndDate:   date(t, "2024-04-01"),
			Policy:    allocator.Growing,
		})
		if err != nil {
			t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
		}
		if res.Adjusted {
			t.Error("Expected result not to be flagged as adjusted")
		}
	})
}

// TestComputeSchedule_Idempotent verifies repeated calls produce identical output.
//
// WHY: The edit flow recomputes schedules; the same inputs must never yield a
// different plan.
func TestComputeSchedule_Idempotent(t *testing.T) {
	req := allocator.Request{
		Goal:      decimal.RequireFromString("8765.43"),
		StartDate: date(t, "2024-02-29"),
		EndDate:   date(t, "2025-08-01"),
		Policy:    allocator.Growing,
	}

	first, err := allocator.ComputeSchedule(req)
	if err != nil {
		t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
	}
	second, err := allocator.ComputeSchedule(req)
	if err != nil {
		t.Fatalf("ComputeSchedule() returned unexpected error: %v", err)
	}

	a, _ := first.Schedule.MarshalJSON()
	b, _ := second.Schedule.MarshalJSON()
	if string(a) != string(b) {
		t.Errorf("Expected identical output, got\n%s\n%s", a, b)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]allocator.Policy{
		"fixed":     allocator.Fixed,
		"Growing":   allocator.Growing,
		" FIXED ":   allocator.Fixed,
		"growing\n": allocator.Growing,
	} {
		got, err := allocator.ParsePolicy(in)
		if err != nil {
			t.Errorf("ParsePolicy(%q) returned unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := allocator.ParsePolicy("linear"); !errors.Is(err, allocator.ErrUnsupportedPolicy) {
		t.Errorf("Expected ErrUnsupportedPolicy, got %v", err)
	}
}

func TestMonthlyEstimate(t *testing.T) {
	req := allocator.Request{
		Goal:      decimal.NewFromInt(1000),
		StartDate: date(t, "2024-01-15"),
		EndDate:   date(t, "2024-03-15"),
		Policy:    allocator.Fixed,
	}

	t.Run("fixed returns rounded monthly value", func(t *testing.T) {
		got, ok := allocator.MonthlyEstimate(req)
		if !ok {
			t.Fatal("Expected estimate to be available")
		}
		if got.String() != "350" {
			t.Errorf("Expected 350, got %s", got)
		}
	})

	t.Run("growing has no estimate", func(t *testing.T) {
		r := req
		r.Policy = allocator.Growing
		if _, ok := allocator.MonthlyEstimate(r); ok {
			t.Error("Expected no estimate for growing policy")
		}
	})

	t.Run("single month returns goal", func(t *testing.T) {
		r := req
		r.EndDate = r.StartDate
		got, ok := allocator.MonthlyEstimate(r)
		if !ok || !got.Equal(r.Goal) {
			t.Errorf("Expected %s, got %s (ok=%v)", r.Goal, got, ok)
		}
	})
}

package allocator_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
)

func sampleSchedule() allocator.Schedule {
	return allocator.Schedule{
		{Month: "2024-01", Amount: decimal.NewFromInt(250)},
		{Month: "2024-02", Amount: decimal.NewFromInt(400)},
		{Month: "2024-03", Amount: decimal.NewFromInt(550)},
		{Month: "2024-04", Amount: decimal.NewFromInt(800)},
	}
}

// TestTotalInvested tests summing completed months.
//
// WHY: The dashboard total drives progress and remaining amounts. Stale or
// duplicated completion keys must not inflate it.
func TestTotalInvested(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		want      string
	}{
		{"nothing completed", nil, "0"},
		{"single month", []string{"2024-02"}, "400"},
		{"several months", []string{"2024-01", "2024-04"}, "1050"},
		{"duplicates count once", []string{"2024-03", "2024-03"}, "550"},
		{"unknown months ignored", []string{"2023-12", "2024-01"}, "250"},
		{"all months", []string{"2024-01", "2024-02", "2024-03", "2024-04"}, "2000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := allocator.TotalInvested(sampleSchedule(), tc.completed)
			if got.String() != tc.want {
				t.Errorf("TotalInvested() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		total decimal.Decimal
		goal  decimal.Decimal
		want  float64
	}{
		{"none", decimal.Zero, decimal.NewFromInt(2000), 0},
		{"quarter", decimal.NewFromInt(500), decimal.NewFromInt(2000), 25},
		{"rounded to two decimals", decimal.NewFromInt(1), decimal.NewFromInt(3), 33.33},
		{"complete", decimal.NewFromInt(2000), decimal.NewFromInt(2000), 100},
		{"capped at one hundred", decimal.NewFromInt(2500), decimal.NewFromInt(2000), 100},
		{"zero goal", decimal.NewFromInt(10), decimal.Zero, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := allocator.ProgressPercent(tc.total, tc.goal); got != tc.want {
				t.Errorf("ProgressPercent() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	got := allocator.Remaining(decimal.NewFromInt(2000), decimal.NewFromInt(650))
	if got.String() != "1350" {
		t.Errorf("Remaining() = %s, want 1350", got)
	}
}

func TestPreview(t *testing.T) {
	values := allocator.Preview(sampleSchedule())

	wantAccumulated := []string{"250", "650", "1200", "2000"}
	if len(values) != len(wantAccumulated) {
		t.Fatalf("Expected %d values, got %d", len(wantAccumulated), len(values))
	}
	for i, want := range wantAccumulated {
		if values[i].Accumulated.String() != want {
			t.Errorf("Month %s: expected accumulated %s, got %s", values[i].Month, want, values[i].Accumulated)
		}
	}
}

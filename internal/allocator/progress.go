package allocator

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TotalInvested sums the scheduled amounts of the completed months.
// Months missing from the schedule count as zero and duplicates count once.
func TotalInvested(s Schedule, completed []string) decimal.Decimal {
	done := make(map[string]struct{}, len(completed))
	for _, m := range completed {
		done[m] = struct{}{}
	}

	total := decimal.Zero
	for _, e := range s {
		if _, ok := done[e.Month]; ok {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ProgressPercent returns min(total/goal*100, 100), rounded to two decimals.
func ProgressPercent(total, goal decimal.Decimal) float64 {
	if !goal.IsPositive() {
		return 0
	}
	pct := total.Div(goal).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct.Round(2).InexactFloat64()
}

// Remaining returns how much of the goal is still to be invested.
func Remaining(goal, total decimal.Decimal) decimal.Decimal {
	return goal.Sub(total)
}

// PreviewValue is a schedule entry with the running total up to and including it.
type PreviewValue struct {
	Month       string          `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Accumulated decimal.Decimal `json:"accumulated"`
}

// Preview annotates each month of the schedule with the accumulated total.
func Preview(s Schedule) []PreviewValue {
	values := make([]PreviewValue, len(s))
	accumulated := decimal.Zero
	for i, e := range s {
		accumulated = accumulated.Add(e.Amount)
		values[i] = PreviewValue{
			Month:       e.Month,
			Amount:      e.Amount,
			Accumulated: accumulated,
		}
	}
	return values
}

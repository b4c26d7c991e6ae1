package allocator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Entry is one month of a schedule.
type Entry struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Schedule is an ordered month-by-month contribution plan.
//
// It marshals to a JSON object keyed by month, in chronological order, with
// plain numeric amounts:
//
//	{"2024-01":350,"2024-02":350,"2024-03":300}
type Schedule []Entry

// Total returns the sum of all amounts.
func (s Schedule) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Amount)
	}
	return total
}

// Amount returns the amount scheduled for month.
func (s Schedule) Amount(month string) (decimal.Decimal, bool) {
	for _, e := range s {
		if e.Month == month {
			return e.Amount, true
		}
	}
	return decimal.Zero, false
}

// Contains reports whether month is part of the schedule.
func (s Schedule) Contains(month string) bool {
	_, ok := s.Amount(month)
	return ok
}

// Months returns the month keys in order.
func (s Schedule) Months() []string {
	months := make([]string, len(s))
	for i, e := range s {
		months[i] = e.Month
	}
	return months
}

// MarshalJSON encodes the schedule as an ordered month-keyed object.
func (s Schedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Month)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(e.Amount.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a month-keyed object and orders it chronologically.
// Amounts may be JSON numbers or numeric strings.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode schedule: %w", err)
	}

	out := make(Schedule, 0, len(raw))
	for month, amount := range raw {
		if _, err := ParseMonthKey(month); err != nil {
			return err
		}
		out = append(out, Entry{Month: month, Amount: amount})
	}
	// YYYY-MM keys sort lexically in chronological order.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	*s = out
	return nil
}

// ValidateSchedule reports whether the schedule sums to goal within the given
// relative tolerance (0.01 means 1%).
func ValidateSchedule(s Schedule, goal decimal.Decimal, tolerance float64) bool {
	if !goal.IsPositive() {
		return false
	}
	diff := s.Total().Sub(goal).Abs().Div(goal)
	return diff.LessThanOrEqual(decimal.NewFromFloat(tolerance))
}

package allocator

import (
	"fmt"
	"time"
)

// MonthKeyLayout is the canonical month identifier format.
const MonthKeyLayout = "2006-01"

// MonthKey formats the calendar month of t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseMonthKey parses a YYYY-MM key into the first day of that month (UTC).
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// MonthsBetween returns the number of whole calendar months from start to end.
// Only year and month are compared, so 2024-01-31 to 2024-02-01 is one month.
// The result is negative when end falls in an earlier month than start.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// MonthCount returns the inclusive number of months spanned by start and end.
func MonthCount(start, end time.Time) int {
	return MonthsBetween(start, end) + 1
}

// monthKeys returns n consecutive month keys beginning at the month of start.
// Iteration starts from day one so AddDate never overflows into a later month.
func monthKeys(start time.Time, n int) []string {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, n)
	for i := range n {
		keys[i] = MonthKey(first.AddDate(0, i, 0))
	}
	return keys
}

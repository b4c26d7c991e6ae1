package validation

import (
	"fmt"
	"time"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
)

// ParseDate parses a date string in "2006-01-02" or RFC3339 format and
// returns midnight UTC of the calendar date as written. An RFC3339 offset
// never moves the date into another day or month.
func ParseDate(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", str)
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ValidateMonthKey checks that month is a YYYY-MM key.
func ValidateMonthKey(month string) error {
	if _, err := allocator.ParseMonthKey(month); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidMonth, month)
	}
	return nil
}

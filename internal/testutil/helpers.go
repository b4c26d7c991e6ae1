package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/logging"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
	"github.com/ndewijer/investment-goal-tracker/internal/repository"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
)

// FixedClock returns a clock that always reads the given UTC date.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func NewTestProfileRepository(t *testing.T, db *sql.DB) *repository.RecordRepository[model.GoalProfile] {
	t.Helper()
	return repository.NewRecordRepository[model.GoalProfile](db, repository.UserProfileKey, nil)
}

func NewTestGoalService(t *testing.T, db *sql.DB) *service.GoalService {
	t.Helper()

	return service.NewGoalService(
		NewTestProfileRepository(t, db),
		repository.NewStoreRepository(db),
		allocator.DefaultRoundingIncrement,
		logging.Discard(),
	)
}

func NewTestNotificationService(t *testing.T, db *sql.DB) *service.NotificationService {
	t.Helper()

	return service.NewNotificationService(
		repository.NewRecordRepository[model.NotificationSettings](db, repository.NotificationsKey, nil),
	)
}

func NewTestAppConfigService(t *testing.T, db *sql.DB) *service.AppConfigService {
	t.Helper()

	return service.NewAppConfigService(
		repository.NewRecordRepository[model.AppConfig](db, repository.AppConfigKey, nil),
		logging.Discard(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"reminders": true})
}

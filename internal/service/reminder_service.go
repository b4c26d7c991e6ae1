package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
)

// Reminder is a prompt to invest the scheduled amount for a month.
type Reminder struct {
	GoalName string
	Month    string
	Amount   decimal.Decimal
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier delivers reminders as log lines.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, r Reminder) error {
	n.logger.Info("contribution reminder", "goal", r.GoalName, "month", r.Month, "amount", r.Amount.String())
	return nil
}

// ReminderService sends at most one reminder per calendar month while the
// current month's contribution is still open.
type ReminderService struct {
	goals         *GoalService
	notifications *NotificationService
	notifier      Notifier
	logger        *log.Logger
}

// NewReminderService creates a new ReminderService.
func NewReminderService(goals *GoalService, notifications *NotificationService, notifier Notifier, logger *log.Logger) *ReminderService {
	return &ReminderService{
		goals:         goals,
		notifications: notifications,
		notifier:      notifier,
		logger:        logger,
	}
}

// Run checks whether a reminder is due at now and sends it.
// It returns true when a reminder was sent.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (bool, error) {
	settings, err := s.notifications.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	if !settings.Enabled {
		return false, nil
	}

	profile, err := s.goals.GetGoal(ctx)
	if errors.Is(err, apperrors.ErrGoalNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now = now.UTC()
	month := allocator.MonthKey(now)
	amount, ok := profile.Schedule.Amount(month)
	if !ok || profile.IsCompleted(month) {
		return false, nil
	}
	if last := settings.LastNotificationDate; last != nil && allocator.MonthKey(last.UTC()) == month {
		return false, nil
	}

	if err := s.notifier.Notify(ctx, Reminder{GoalName: profile.Name, Month: month, Amount: amount}); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}
	if err := s.notifications.SetLastNotificationDate(ctx, now); err != nil {
		return true, err
	}

	s.logger.Debug("reminder sent", "month", month)
	return true, nil
}

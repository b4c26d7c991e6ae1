package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
	"github.com/ndewijer/investment-goal-tracker/internal/repository"
)

// NotificationService manages the reminder settings record.
type NotificationService struct {
	repo *repository.RecordRepository[model.NotificationSettings]
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *repository.RecordRepository[model.NotificationSettings]) *NotificationService {
	return &NotificationService{repo: repo}
}

// GetSettings returns the stored settings, or the defaults when none are stored.
func (s *NotificationService) GetSettings(ctx context.Context) (model.NotificationSettings, error) {
	settings, ok, err := s.repo.Load(ctx)
	if err != nil {
		return model.NotificationSettings{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSettings, err)
	}
	if !ok {
		return model.DefaultNotificationSettings(), nil
	}
	return settings, nil
}

// ToggleNotifications flips the enabled flag and returns the new settings.
func (s *NotificationService) ToggleNotifications(ctx context.Context) (model.NotificationSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return model.NotificationSettings{}, err
	}
	settings.Enabled = !settings.Enabled
	if err := s.repo.Save(ctx, settings); err != nil {
		return model.NotificationSettings{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSettings, err)
	}
	return settings, nil
}

// SetLastNotificationDate records when the last reminder went out.
func (s *NotificationService) SetLastNotificationDate(ctx context.Context, at time.Time) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	at = at.UTC()
	settings.LastNotificationDate = &at
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSettings, err)
	}
	return nil
}

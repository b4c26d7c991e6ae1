package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
	"github.com/ndewijer/investment-goal-tracker/internal/repository"
	"github.com/ndewijer/investment-goal-tracker/internal/validation"
)

// AppConfigService manages display preferences.
type AppConfigService struct {
	repo   *repository.RecordRepository[model.AppConfig]
	logger *log.Logger
}

// NewAppConfigService creates a new AppConfigService.
func NewAppConfigService(repo *repository.RecordRepository[model.AppConfig], logger *log.Logger) *AppConfigService {
	return &AppConfigService{repo: repo, logger: logger}
}

// GetConfig returns the stored config. Missing or invalid records yield the defaults.
func (s *AppConfigService) GetConfig(ctx context.Context) (model.AppConfig, error) {
	cfg, ok, err := s.repo.Load(ctx)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSettings, err)
	}
	if !ok {
		return model.DefaultAppConfig(), nil
	}
	if !cfg.Valid() {
		s.logger.Warn("stored app config is invalid, using defaults", "theme", cfg.Theme, "currency", cfg.Currency, "locale", cfg.Locale)
		return model.DefaultAppConfig(), nil
	}
	return cfg, nil
}

// UpdateConfig applies the provided fields and stores the result.
func (s *AppConfigService) UpdateConfig(ctx context.Context, req request.UpdateConfigRequest) (model.AppConfig, error) {
	if err := validation.ValidateUpdateConfig(req); err != nil {
		return model.AppConfig{}, err
	}

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return model.AppConfig{}, err
	}
	if req.Theme != nil {
		cfg.Theme = *req.Theme
	}
	if req.Currency != nil {
		cfg.Currency = *req.Currency
	}
	if req.Locale != nil {
		cfg.Locale = *req.Locale
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSettings, err)
	}
	return cfg, nil
}

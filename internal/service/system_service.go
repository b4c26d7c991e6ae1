package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/database"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
	"github.com/ndewijer/investment-goal-tracker/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService. features is reported as-is by CheckVersion.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the schema migration state.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, pending, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}

	info := model.VersionInfo{
		AppVersion:      version.Version,
		DBVersion:       dbVersion,
		Features:        s.features,
		MigrationNeeded: pending,
	}
	if pending {
		msg := "database schema is behind, run goalplan migrate or restart the server"
		info.MigrationMessage = &msg
	}
	return info, nil
}

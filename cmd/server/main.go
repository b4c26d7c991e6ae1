package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ndewijer/investment-goal-tracker/internal/api"
	"github.com/ndewijer/investment-goal-tracker/internal/config"
	"github.com/ndewijer/investment-goal-tracker/internal/database"
	"github.com/ndewijer/investment-goal-tracker/internal/logging"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
	"github.com/ndewijer/investment-goal-tracker/internal/repository"
	"github.com/ndewijer/investment-goal-tracker/internal/scheduler"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
	"github.com/ndewijer/investment-goal-tracker/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	logger := logging.New(cfg.Log.Level, "goal-tracker")
	logger.Info("starting", "version", version.Version)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(context.Background(), db)
	if err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}
	logger.Info("connected to database", "path", cfg.Database.Path, "schema_version", schemaVersion)

	sealer, err := repository.NewSealer(cfg.Database.EncryptionKey)
	if err != nil {
		logger.Fatal("failed to configure record sealing", "error", err)
	}

	// Create repositories
	profileRepo := repository.NewRecordRepository[model.GoalProfile](db, repository.UserProfileKey, sealer)
	notificationRepo := repository.NewRecordRepository[model.NotificationSettings](db, repository.NotificationsKey, sealer)
	appConfigRepo := repository.NewRecordRepository[model.AppConfig](db, repository.AppConfigKey, sealer)
	storeRepo := repository.NewStoreRepository(db)

	// Create services
	systemService := service.NewSystemService(db, map[string]bool{
		"reminders":      cfg.Reminder.Enabled,
		"record_sealing": sealer != nil,
	})
	goalService := service.NewGoalService(
		profileRepo,
		storeRepo,
		cfg.Goal.RoundingIncrement,
		logger.WithPrefix("goal"),
	)
	notificationService := service.NewNotificationService(notificationRepo)
	appConfigService := service.NewAppConfigService(appConfigRepo, logger.WithPrefix("config"))

	// Background reminders
	jobs := scheduler.New(logger.WithPrefix("scheduler"))
	if cfg.Reminder.Enabled {
		reminderService := service.NewReminderService(
			goalService,
			notificationService,
			service.NewLogNotifier(logger.WithPrefix("reminder")),
			logger.WithPrefix("reminder"),
		)
		err := jobs.Add("monthly-reminder", cfg.Reminder.Schedule, func(ctx context.Context, now time.Time) error {
			_, err := reminderService.Run(ctx, now)
			return err
		})
		if err != nil {
			logger.Fatal("failed to schedule reminders", "error", err)
		}
	}
	jobs.Start()

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Goal:         goalService,
		Notification: notificationService,
		AppConfig:    appConfigService,
	}, cfg, logger.WithPrefix("http"))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	jobs.Stop(ctx)
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}

package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/investment-goal-tracker/internal/api/handlers"
	custommiddleware "github.com/ndewijer/investment-goal-tracker/internal/api/middleware"
	"github.com/ndewijer/investment-goal-tracker/internal/config"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
)

// Services groups the services the router dispatches to.
type Services struct {
	System       *service.SystemService
	Goal         *service.GoalService
	Notification *service.NotificationService
	AppConfig    *service.AppConfigService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	scheduleHandler := handlers.NewScheduleHandler(svc.Goal)
	goalHandler := handlers.NewGoalHandler(svc.Goal)
	settingsHandler := handlers.NewSettingsHandler(svc.Notification, svc.AppConfig)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/preview", scheduleHandler.Preview)
			r.Post("/compare", scheduleHandler.Compare)
		})

		r.Route("/goal", func(r chi.Router) {
			r.Get("/", goalHandler.GetGoal)
			r.Post("/", goalHandler.CreateGoal)
			r.Put("/", goalHandler.UpdateGoal)
			r.Delete("/", goalHandler.DeleteGoal)
			r.Get("/progress", goalHandler.Progress)

			r.Route("/months/{month}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateMonthKeyMiddleware)
				r.Post("/complete", goalHandler.CompleteMonth)
				r.Delete("/complete", goalHandler.UncompleteMonth)
				r.Post("/toggle", goalHandler.ToggleMonth)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/notifications", settingsHandler.Notifications)
			r.Post("/notifications/toggle", settingsHandler.ToggleNotifications)
			r.Get("/config", settingsHandler.Config)
			r.Put("/config", settingsHandler.UpdateConfig)
		})

		r.Delete("/data", goalHandler.ClearAllData)
	})

	return r
}

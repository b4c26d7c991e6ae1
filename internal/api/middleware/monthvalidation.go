// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/investment-goal-tracker/internal/api/response"
	"github.com/ndewijer/investment-goal-tracker/internal/validation"
)

// ValidateMonthKeyMiddleware validates that the month URL parameter is present and is a YYYY-MM key.
// Returns 400 Bad Request if the month is missing or malformed.
//
// Example usage in router:
//
//	r.Route("/months/{month}", func(r chi.Router) {
//	    r.Use(middleware.ValidateMonthKeyMiddleware)
//	    r.Post("/toggle", handler.ToggleMonth)
//	})
func ValidateMonthKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		month := chi.URLParam(r, "month")

		if month == "" {
			response.RespondError(w, http.StatusBadRequest, "month is required", "")
			return
		}

		if err := validation.ValidateMonthKey(month); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid month format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

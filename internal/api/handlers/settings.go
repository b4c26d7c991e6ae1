package handlers

import (
	"net/http"

	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/api/response"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/service"
)

// SettingsHandler handles notification and display settings.
type SettingsHandler struct {
	notificationService *service.NotificationService
	appConfigService    *service.AppConfigService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(notificationService *service.NotificationService, appConfigService *service.AppConfigService) *SettingsHandler {
	return &SettingsHandler{
		notificationService: notificationService,
		appConfigService:    appConfigService,
	}
}

// Notifications returns the reminder settings.
//
// Endpoint: GET /api/settings/notifications
func (h *SettingsHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	settings, err := h.notificationService.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// ToggleNotifications flips reminders on or off.
//
// Endpoint: POST /api/settings/notifications/toggle
func (h *SettingsHandler) ToggleNotifications(w http.ResponseWriter, r *http.Request) {
	settings, err := h.notificationService.ToggleNotifications(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// Config returns the display preferences.
//
// Endpoint: GET /api/settings/config
func (h *SettingsHandler) Config(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.appConfigService.GetConfig(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

// UpdateConfig applies a partial update to the display preferences.
//
// Endpoint: PUT /api/settings/config
// Request Body: UpdateConfigRequest (theme, currency, locale; all optional)
// Error: 400 Bad Request if a value is not supported
func (h *SettingsHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cfg, err := h.appConfigService.UpdateConfig(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveSettings.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

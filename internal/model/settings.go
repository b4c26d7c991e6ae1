package model

import "time"

// NotificationSettings controls the monthly contribution reminder.
type NotificationSettings struct {
	Enabled              bool       `json:"enabled"`
	LastNotificationDate *time.Time `json:"lastNotificationDate"`
}

// DefaultNotificationSettings returns reminders enabled and never sent.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: true}
}

var (
	ValidThemes     = map[string]bool{"system": true, "light": true, "dark": true}
	ValidCurrencies = map[string]bool{"BRL": true, "USD": true, "EUR": true}
	ValidLocales    = map[string]bool{"pt-BR": true, "en-US": true, "es-ES": true}
)

// AppConfig holds display preferences.
type AppConfig struct {
	Theme    string `json:"theme"`
	Currency string `json:"currency"`
	Locale   string `json:"locale"`
}

// DefaultAppConfig returns the configuration used before the user changes anything.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Theme:    "system",
		Currency: "BRL",
		Locale:   "pt-BR",
	}
}

// Valid reports whether every field holds a supported value.
func (c AppConfig) Valid() bool {
	return ValidThemes[c.Theme] && ValidCurrencies[c.Currency] && ValidLocales[c.Locale]
}

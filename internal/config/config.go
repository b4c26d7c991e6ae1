package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Goal     GoalConfig
	Reminder ReminderConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
	// EncryptionKey seals stored records when set. Base64 fernet key.
	EncryptionKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// GoalConfig holds defaults applied to new goal schedules
type GoalConfig struct {
	RoundingIncrement int64
}

// ReminderConfig controls the monthly contribution reminder job
type ReminderConfig struct {
	Enabled  bool
	Schedule string // standard 5-field cron expression
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	increment, err := getEnvInt("ROUNDING_INCREMENT", 50)
	if err != nil {
		return nil, err
	}
	reminderEnabled, err := getEnvBool("REMINDER_ENABLED", true)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path:          getEnv("DB_PATH", "./data/goal_tracker.db"),
			EncryptionKey: os.Getenv("STORE_ENCRYPTION_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Goal: GoalConfig{
			RoundingIncrement: increment,
		},
		Reminder: ReminderConfig{
			Enabled:  reminderEnabled,
			Schedule: getEnv("REMINDER_SCHEDULE", "0 9 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Goal.RoundingIncrement < 1 {
		return fmt.Errorf("ROUNDING_INCREMENT must be at least 1, got %d", c.Goal.RoundingIncrement)
	}
	if c.Reminder.Enabled {
		if _, err := cron.ParseStandard(c.Reminder.Schedule); err != nil {
			return fmt.Errorf("invalid REMINDER_SCHEDULE %q: %w", c.Reminder.Schedule, err)
		}
	}
	if c.Database.EncryptionKey != "" {
		if _, err := fernet.DecodeKey(c.Database.EncryptionKey); err != nil {
			return fmt.Errorf("invalid STORE_ENCRYPTION_KEY: %w", err)
		}
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

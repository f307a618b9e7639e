package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr           string
	DatabaseURL    string
	SessionSecret  string
	SessionTTL     time.Duration
	NotifySecret   string
	NotifyInterval time.Duration
	NotifyDailyAt  string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:           strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret:  strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionTTL:     parseHours(strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))),
		NotifySecret:   strings.TrimSpace(os.Getenv("NOTIFICATIONS_SECRET")),
		NotifyInterval: parseHours(strings.TrimSpace(os.Getenv("NOTIFY_INTERVAL_HOURS"))),
		NotifyDailyAt:  strings.TrimSpace(os.Getenv("NOTIFY_DAILY_AT")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "reminders.db"
	}

	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 72 * time.Hour
	}

	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

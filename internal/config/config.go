package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config keeps runtime settings for the calendar service. Values are read
// from CALENDAR_-prefixed environment variables.
type Config struct {
	HTTPPort    int    `envconfig:"HTTP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"shared_calendar.db"`

	// Timezone is the single zone all scheduling runs in.
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	// ReminderInterval is how often the reminder sweep runs.
	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"1m"`

	// TelegramToken enables the Telegram notification channel when set.
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" default:""`
}

// Load reads and validates configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("CALENDAR", &cfg); err != nil {
		return cfg, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port %d", c.HTTPPort)
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("reminder interval must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

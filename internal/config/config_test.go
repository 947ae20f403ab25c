package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.HTTPPort)
	require.Equal(t, "shared_calendar.db", cfg.DatabaseURL)
	require.NotZero(t, cfg.ReminderInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CALENDAR_HTTP_PORT", "9999")
	t.Setenv("CALENDAR_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.HTTPPort)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("CALENDAR_HTTP_PORT", "-1")
	_, err := Load()
	require.Error(t, err)
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("CALENDAR_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	require.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.Tracker.PollInterval)
	assert.Equal(t, "activity_log.csv", cfg.Log.Path)
	assert.Equal(t, "app_categories.json", cfg.Category.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "poll interval below minimum",
			mutate:  func(c *Config) { c.Tracker.PollInterval = 500 * time.Millisecond },
			wantErr: "poll interval",
		},
		{
			name:    "poll interval above maximum",
			mutate:  func(c *Config) { c.Tracker.PollInterval = time.Hour },
			wantErr: "poll interval",
		},
		{
			name:    "threshold shorter than poll interval",
			mutate:  func(c *Config) { c.Tracker.InactivityThreshold = 5 * time.Second },
			wantErr: "inactivity threshold",
		},
		{
			name:    "empty log path",
			mutate:  func(c *Config) { c.Log.Path = "" },
			wantErr: "log file path",
		},
		{
			name:    "empty category path",
			mutate:  func(c *Config) { c.Category.Path = "" },
			wantErr: "category file path",
		},
		{
			name:    "zero top apps",
			mutate:  func(c *Config) { c.Report.TopApps = 0 },
			wantErr: "top apps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEffectiveInactivityThreshold(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30*time.Second, cfg.EffectiveInactivityThreshold(), "derived from poll interval")

	cfg.Tracker.InactivityThreshold = 2 * time.Minute
	assert.Equal(t, 2*time.Minute, cfg.EffectiveInactivityThreshold())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FOCUSTRACK_LOG_FILE", "/tmp/other.csv")
	t.Setenv("FOCUSTRACK_POLL_INTERVAL", "30")
	t.Setenv("FOCUSTRACK_INACTIVITY_THRESHOLD", "120")
	t.Setenv("FOCUSTRACK_TOP_APPS", "8")

	cfg := New()
	assert.Equal(t, "/tmp/other.csv", cfg.Log.Path)
	assert.Equal(t, 30*time.Second, cfg.Tracker.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Tracker.InactivityThreshold)
	assert.Equal(t, 8, cfg.Report.TopApps)
}

func TestLoadFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("FOCUSTRACK_POLL_INTERVAL", "garbage")
	t.Setenv("FOCUSTRACK_TOP_APPS", "-2")

	cfg := New()
	assert.Equal(t, 10*time.Second, cfg.Tracker.PollInterval)
	assert.Equal(t, 5, cfg.Report.TopApps)
}

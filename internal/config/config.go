package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Log configuration
	Log LogConfig

	// Category configuration
	Category CategoryConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Report configuration
	Report ReportConfig
}

// LogConfig holds activity log configuration
type LogConfig struct {
	Path string // Path to the activity log (CSV, or SQLite by extension)
}

// CategoryConfig holds category mapping configuration
type CategoryConfig struct {
	Path string // Path to the app-to-category JSON file
}

// TrackerConfig holds tracking behavior configuration
type TrackerConfig struct {
	PollInterval        time.Duration // How often to check the focused window
	MinPollInterval     time.Duration // Minimum allowed poll interval
	MaxPollInterval     time.Duration // Maximum allowed poll interval
	InactivityThreshold time.Duration // Max gap between samples still treated as continuous focus; 0 derives from PollInterval
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Where the detached tracker writes its logs
}

// ReportConfig holds analysis configuration
type ReportConfig struct {
	TopApps     int           // How many apps the insights section lists
	MinDuration time.Duration // Intervals shorter than this are excluded from aggregation
}

// inactivityMultiple derives the default inactivity threshold from the
// poll interval: one missed tick is tolerated, two are not.
const inactivityMultiple = 3

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Path: "activity_log.csv",
		},
		Category: CategoryConfig{
			Path: "app_categories.json",
		},
		Tracker: TrackerConfig{
			PollInterval:        10 * time.Second,
			MinPollInterval:     1 * time.Second,
			MaxPollInterval:     300 * time.Second,
			InactivityThreshold: 0, // derived
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/focustrack-%d.pid", os.Getuid()),
			LogFile: fmt.Sprintf("/tmp/focustrack-%d.log", os.Getuid()),
		},
		Report: ReportConfig{
			TopApps:     5,
			MinDuration: 5 * time.Second,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Tracker.InactivityThreshold < 0 {
		return fmt.Errorf("inactivity threshold cannot be negative")
	}

	if c.Tracker.InactivityThreshold > 0 && c.Tracker.InactivityThreshold < c.Tracker.PollInterval {
		return fmt.Errorf("inactivity threshold (%v) cannot be shorter than the poll interval (%v)",
			c.Tracker.InactivityThreshold, c.Tracker.PollInterval)
	}

	if c.Log.Path == "" {
		return fmt.Errorf("log file path cannot be empty")
	}

	if c.Category.Path == "" {
		return fmt.Errorf("category file path cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	if c.Report.TopApps < 1 {
		return fmt.Errorf("top apps count must be at least 1, got %d", c.Report.TopApps)
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// EffectiveInactivityThreshold resolves the configured threshold, deriving
// it from the poll interval when unset.
func (c *Config) EffectiveInactivityThreshold() time.Duration {
	if c.Tracker.InactivityThreshold > 0 {
		return c.Tracker.InactivityThreshold
	}
	return c.Tracker.PollInterval * inactivityMultiple
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Log:
    Path: %s
  Category:
    Path: %s
  Tracker:
    Poll Interval: %v
    Inactivity Threshold: %v
  Daemon:
    PID File: %s
    Log File: %s
  Report:
    Top Apps: %d
    Min Duration: %v`,
		c.Log.Path,
		c.Category.Path,
		c.Tracker.PollInterval,
		c.EffectiveInactivityThreshold(),
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Report.TopApps,
		c.Report.MinDuration,
	)
}

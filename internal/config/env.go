package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	if logPath := os.Getenv("FOCUSTRACK_LOG_FILE"); logPath != "" {
		cfg.Log.Path = logPath
	}

	if catPath := os.Getenv("FOCUSTRACK_CATEGORY_FILE"); catPath != "" {
		cfg.Category.Path = catPath
	}

	if pollInterval := os.Getenv("FOCUSTRACK_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Tracker.MinPollInterval && interval <= cfg.Tracker.MaxPollInterval {
				cfg.Tracker.PollInterval = interval
			}
		}
	}

	if threshold := os.Getenv("FOCUSTRACK_INACTIVITY_THRESHOLD"); threshold != "" {
		if seconds, err := strconv.Atoi(threshold); err == nil && seconds > 0 {
			cfg.Tracker.InactivityThreshold = time.Duration(seconds) * time.Second
		}
	}

	if pidFile := os.Getenv("FOCUSTRACK_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if topApps := os.Getenv("FOCUSTRACK_TOP_APPS"); topApps != "" {
		if n, err := strconv.Atoi(topApps); err == nil && n > 0 {
			cfg.Report.TopApps = n
		}
	}

	if minDuration := os.Getenv("FOCUSTRACK_MIN_DURATION"); minDuration != "" {
		if seconds, err := strconv.Atoi(minDuration); err == nil && seconds >= 0 {
			cfg.Report.MinDuration = time.Duration(seconds) * time.Second
		}
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}

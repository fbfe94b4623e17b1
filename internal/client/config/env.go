package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvServerURL      = "RECIPEARCHIVE_SERVER_URL"
	EnvDatabaseDSN    = "RECIPEARCHIVE_DATABASE_DSN"
	EnvRequestTimeout = "RECIPEARCHIVE_REQUEST_TIMEOUT"
	EnvLogLevel       = "RECIPEARCHIVE_LOG_LEVEL"
	EnvLogFormat      = "RECIPEARCHIVE_LOG_FORMAT"
)

// dotenvFile is loaded when present. Variables already set in the process
// environment are not overridden by it.
var dotenvFile = ".env"

// parseEnv overlays cfg with RECIPEARCHIVE_* variables. Unset or empty
// variables leave the current value in place. RECIPEARCHIVE_REQUEST_TIMEOUT
// takes a duration string ("15s") or a plain number of seconds.
func parseEnv(cfg *Config) error {
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			return fmt.Errorf("load %s: %w", dotenvFile, err)
		}
	}

	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

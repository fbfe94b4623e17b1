package config

import "time"

// Config holds runtime settings for the recipearchive CLI.
type Config struct {
	// ServerURL is prepended verbatim to every API path.
	ServerURL string
	// DatabaseDSN locates the SQLite file that keeps the session credential.
	DatabaseDSN string
	// RequestTimeout bounds a single HTTP exchange; zero means no timeout.
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabaseDSN = "recipearchive.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config from defaults, environment, the optional
// JSON file and command-line flags, in that order.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

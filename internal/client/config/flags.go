package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/cacutler/recipearchive/internal/flagx"
)

// parseFlags applies -a, -d, -t, -l and -f. Other arguments (for example
// -c, handled by parseJson) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	owned := flagx.FilterArgs(args, []string{"a", "d", "t", "l", "f"})

	fs := flag.NewFlagSet("recipearchive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local session database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	if err := fs.Parse(owned); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}

// Package config loads runtime configuration for the recipearchive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: an optional .env file in the working directory, then
//     RECIPEARCHIVE_* variables (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-a string   base URL of the RecipeArchive API
//	-d string   path of the local SQLite database holding the session
//	-t int      request timeout (seconds, 0 disables)
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text, json, zap
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "database_dsn": "recipearchive.db",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// request_timeout accepts a duration string or integer nanoseconds.
package config

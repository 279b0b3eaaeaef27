// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Optional .env file in the working directory, then CATALOG_* environment
//     variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog API
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   local database path
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "15s",
//	  "online_check_interval": "3s",
//	  "badge_refresh_interval": "30s",
//	  "database_path": "catalog.db",
//	  "download_dir": "downloads",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
//
// # Environment
//
// Every field has a CATALOG_ variable: CATALOG_SERVER_BASE_URL,
// CATALOG_REQUEST_TIMEOUT ("15s"), CATALOG_LOG_BACKEND, CATALOG_S3_ENDPOINT
// and so on.
package config

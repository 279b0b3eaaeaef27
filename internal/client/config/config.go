package config

import (
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/imagesource"
)

// Config holds runtime settings for the catalog CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the catalog REST API, e.g. http://127.0.0.1:8000.
//   - RequestTimeout: per-request deadline applied by the API client.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - BadgeRefreshInterval: how often the header badge (unread count) is refreshed.
//   - DatabasePath: SQLite file holding the session and the offline catalog.
//   - DownloadDir: where `profile` saves downloaded profile images.
//   - LogLevel, LogBackend: diagnostics level and backend (slog or logrus).
//   - S3*: credentials and endpoint used for s3:// image URIs.
type Config struct {
	ServerBaseURL        string
	RequestTimeout       time.Duration
	OnlineCheckInterval  time.Duration
	BadgeRefreshInterval time.Duration
	DatabasePath         string
	DownloadDir          string
	LogLevel             string
	LogBackend           string
	S3Region             string
	S3Endpoint           string
	S3AccessKey          string
	S3SecretKey          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.BadgeRefreshInterval = 30 * time.Second
	c.DatabasePath = "catalog.db"
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.S3Region = "us-east-1"
}

// S3 returns the subset of settings the image resolver needs.
func (c *Config) S3() imagesource.S3Config {
	return imagesource.S3Config{
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

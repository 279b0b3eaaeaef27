package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/catalog/internal/flagx"
	"github.com/dmitrijs2005/catalog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Intervals are timex.Duration so the file may carry "3s" or integer
// nanoseconds. Empty values leave the current setting alone.
type JsonConfig struct {
	ServerBaseURL        string         `json:"server_base_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	OnlineCheckInterval  timex.Duration `json:"online_check_interval"`
	BadgeRefreshInterval timex.Duration `json:"badge_refresh_interval"`
	DatabasePath         string         `json:"database_path"`
	DownloadDir          string         `json:"download_dir"`
	LogLevel             string         `json:"log_level"`
	LogBackend           string         `json:"log_backend"`
	S3Region             string         `json:"s3_region"`
	S3Endpoint           string         `json:"s3_endpoint"`
	S3AccessKey          string         `json:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens. Read or unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.BadgeRefreshInterval.Duration > 0 {
		cfg.BadgeRefreshInterval = jc.BadgeRefreshInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. CATALOG_SERVER_BASE_URL.
const EnvPrefix = "catalog"

// dotenvPath is the optional file loaded before the environment is read.
// Variables already set in the process environment win over the file.
var dotenvPath = ".env"

type envConfig struct {
	ServerBaseURL        string        `envconfig:"SERVER_BASE_URL"`
	RequestTimeout       time.Duration `envconfig:"REQUEST_TIMEOUT"`
	OnlineCheckInterval  time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	BadgeRefreshInterval time.Duration `envconfig:"BADGE_REFRESH_INTERVAL"`
	DatabasePath         string        `envconfig:"DATABASE_PATH"`
	DownloadDir          string        `envconfig:"DOWNLOAD_DIR"`
	LogLevel             string        `envconfig:"LOG_LEVEL"`
	LogBackend           string        `envconfig:"LOG_BACKEND"`
	S3Region             string        `envconfig:"S3_REGION"`
	S3Endpoint           string        `envconfig:"S3_ENDPOINT"`
	S3AccessKey          string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey          string        `envconfig:"S3_SECRET_KEY"`
}

// parseEnv overlays Config with CATALOG_* variables. The struct is seeded with
// the current values so unset variables keep them. A missing .env file is
// fine; a malformed one or a bad value panics.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	ec := envConfig{
		ServerBaseURL:        cfg.ServerBaseURL,
		RequestTimeout:       cfg.RequestTimeout,
		OnlineCheckInterval:  cfg.OnlineCheckInterval,
		BadgeRefreshInterval: cfg.BadgeRefreshInterval,
		DatabasePath:         cfg.DatabasePath,
		DownloadDir:          cfg.DownloadDir,
		LogLevel:             cfg.LogLevel,
		LogBackend:           cfg.LogBackend,
		S3Region:             cfg.S3Region,
		S3Endpoint:           cfg.S3Endpoint,
		S3AccessKey:          cfg.S3AccessKey,
		S3SecretKey:          cfg.S3SecretKey,
	}
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		panic(err)
	}

	*cfg = Config(ec)
}

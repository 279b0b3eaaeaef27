package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDotenv(t *testing.T) {
	t.Helper()
	orig := dotenvPath
	dotenvPath = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { dotenvPath = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 30*time.Second, c.BadgeRefreshInterval)
	assert.Equal(t, "catalog.db", c.DatabasePath)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	noDotenv(t)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	noDotenv(t)

	path := writeTempJSON(t, "", "", map[string]any{
		"server_base_url": "http://json:1",
		"database_path":   "json.db",
		"log_level":       "warn",
	})
	t.Setenv("CATALOG_DATABASE_PATH", "env.db")
	t.Setenv("CATALOG_LOG_LEVEL", "error")

	os.Args = []string{"testbin", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "http://json:1", cfg.ServerBaseURL)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_S3(t *testing.T) {
	c := Config{S3Region: "eu-west-1", S3Endpoint: "http://minio:9000", S3AccessKey: "k", S3SecretKey: "s"}

	s3 := c.S3()

	assert.Equal(t, "eu-west-1", s3.Region)
	assert.Equal(t, "http://minio:9000", s3.Endpoint)
	assert.Equal(t, "k", s3.AccessKey)
	assert.Equal(t, "s", s3.SecretKey)
}

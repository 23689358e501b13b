package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, SourceDir, cfg.Source.Kind)
	assert.Equal(t, "data", cfg.Source.Dir)
	assert.Zero(t, cfg.Source.FetchTimeout)
	assert.False(t, cfg.Demo.Enabled())
	assert.Equal(t, 0.6, cfg.Breaker.FailureThreshold)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SOURCE_KIND", "HTTP")
	t.Setenv("SOURCE_URL", "https://feeds.example.com/esg/")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("DEMO_ERROR_RATE", "0.2")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://dash.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, 5*time.Second, cfg.Source.FetchTimeout)
	assert.True(t, cfg.Demo.Enabled())
	assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadSource(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SOURCE_KIND", "ftp")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid config")

	t.Setenv("SOURCE_KIND", "http")
	t.Setenv("SOURCE_URL", "")
	_, err = Load()
	assert.ErrorContains(t, err, "URL")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esgwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9090"
refresh_schedule: "*/15 * * * *"
source:
  kind: sqlite
  sqlite_path: /tmp/feeds.db
`), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "*/15 * * * *", cfg.RefreshSchedule)
	assert.Equal(t, SourceSQLite, cfg.Source.Kind)
	assert.Equal(t, "/tmp/feeds.db", cfg.Source.SQLitePath)
}

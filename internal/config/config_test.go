package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 30, cfg.CacheTTLMinutes)
	assert.Equal(t, 15, cfg.FetchTimeoutSeconds)
	assert.Equal(t, "warn", cfg.UnpublishedPolicy)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 20, cfg.DefaultRowCount)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
sheet_link: "https://docs.google.com/spreadsheets/d/abc123/edit"
cache_backend: redis
redis_addr: "redis:6379"
cache_ttl_minutes: 5
unpublished_policy: ignore
listen_addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/edit", cfg.SheetLink)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 5, cfg.CacheTTLMinutes)
	assert.Equal(t, "ignore", cfg.UnpublishedPolicy)
	assert.Equal(t, ":9090", cfg.ListenAddr)

	// Unset keys still pick up defaults.
	assert.Equal(t, 15, cfg.FetchTimeoutSeconds)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "listen_addr: \":9090\"\ncache_ttl_minutes: 5\n")

	t.Setenv("PRICEPREP_LISTEN_ADDR", ":7070")
	t.Setenv("PRICEPREP_CACHE_TTL_MINUTES", "10")
	t.Setenv("PRICEPREP_SHEET_LINK", "https://docs.google.com/spreadsheets/d/envid/edit")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, 10, cfg.CacheTTLMinutes)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/envid/edit", cfg.SheetLink)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "cache_backend: memcached\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "unpublished_policy: block\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "cache_ttl_minutes: -1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "default_row_count: 5000\n"))
	assert.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	cfg, err := Load(writeConfig(t, "fetch_timeout_seconds: 2\ncache_ttl_minutes: 3\nsession_ttl_minutes: 4\n"))
	require.NoError(t, err)

	assert.Equal(t, "2s", cfg.FetchTimeout().String())
	assert.Equal(t, "3m0s", cfg.CacheTTL().String())
	assert.Equal(t, "4m0s", cfg.SessionTTL().String())
}

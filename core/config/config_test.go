package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv registers cleanup for variables that LoadConfig may set through .env.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t, "SERVER_PORT", "DIFF_MAX_RECORDS", "DIFF_CACHE_TTL_SECONDS", "LOG_LEVEL", "STORAGE_BUCKET")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 16, cfg.Server.BodyLimitMB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "records", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 300, cfg.Diff.CacheTTLSeconds)
	assert.Equal(t, 0, cfg.Diff.MaxRecords)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t, "SERVER_PORT", "DIFF_MAX_RECORDS", "LOG_LEVEL")

	dir := t.TempDir()
	env := "SERVER_PORT=9090\nDIFF_MAX_RECORDS=5000\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Diff.MaxRecords)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t, "STORAGE_BUCKET")
	t.Setenv("DIFF_CACHE_TTL_SECONDS", "0")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Diff.CacheTTLSeconds)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "records", cfg.Storage.Bucket)
}

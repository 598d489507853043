package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "https://dev.to/api", cfg.APIBaseURL)
	assert.Equal(t, "dev.to", cfg.ArticleHost)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, int64(5<<20), cfg.MaxImageBytes)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devtobadge.yaml"), []byte(
		"addr: \":8080\"\nhttp_timeout: 3s\nmetrics_enabled: false\narticle_host: forem.dev\n",
	), 0o644))
	t.Setenv("DEVTOBADGE_ADDR", ":9090")
	t.Setenv("DEVTOBADGE_MAX_IMAGE_BYTES", "1024")

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "forem.dev", cfg.ArticleHost)
	assert.Equal(t, int64(1024), cfg.MaxImageBytes)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEVTOBADGE_SERVICE_NAME=from-dotenv\n"), 0o644))
	t.Setenv("DEVTOBADGE_SERVICE_NAME", "")
	require.NoError(t, os.Unsetenv("DEVTOBADGE_SERVICE_NAME"))

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.ServiceName)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := loadConfig(viper.New(), "does-not-exist.yaml")
	assert.Error(t, err)
}

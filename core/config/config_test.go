package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"r2-manager/core/config"
	"r2-manager/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv registers cleanup for every variable the tests may touch, so values
// loaded from .env files do not leak into other tests.
func clearEnv(t *testing.T) {
	for _, name := range []string{
		"STORAGE_DRIVER", "STORAGE_ENDPOINT", "STORAGE_BUCKET", "STORAGE_ACCESS_KEY",
		"STORAGE_SECRET_KEY", "STORAGE_REGION", "STORAGE_PAGE_SIZE", "STORAGE_USE_SSL",
		"CLOUDFLARE_URL", "CLOUDFLARE_BUCKET_NAME", "CLOUDFLARE_CLIENT_ID", "CLOUDFLARE_SECRET_KEY",
		"LOG_LEVEL", "SERVER_PORT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, storage.DriverS3, cfg.Storage.Driver)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, 1000, cfg.Storage.PageSize)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 64, cfg.Server.BodyLimitMB)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_ENDPOINT", "https://acct.r2.cloudflarestorage.com")
	t.Setenv("STORAGE_BUCKET", "assets")
	t.Setenv("STORAGE_ACCESS_KEY", "id")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("STORAGE_PAGE_SIZE", "250")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://acct.r2.cloudflarestorage.com", cfg.Storage.Endpoint)
	assert.Equal(t, "assets", cfg.Storage.Bucket)
	assert.Equal(t, "id", cfg.Storage.AccessKey)
	assert.Equal(t, "secret", cfg.Storage.SecretKey)
	assert.Equal(t, 250, cfg.Storage.PageSize)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoadConfig_LegacyNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLOUDFLARE_URL", "https://legacy.r2.cloudflarestorage.com")
	t.Setenv("CLOUDFLARE_BUCKET_NAME", "legacy-bucket")
	t.Setenv("CLOUDFLARE_CLIENT_ID", "legacy-id")
	t.Setenv("CLOUDFLARE_SECRET_KEY", "legacy-secret")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://legacy.r2.cloudflarestorage.com", cfg.Storage.Endpoint)
	assert.Equal(t, "legacy-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "legacy-id", cfg.Storage.AccessKey)
	assert.Equal(t, "legacy-secret", cfg.Storage.SecretKey)

	t.Run("DerivedNameWins", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "primary")
		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "primary", cfg.Storage.Bucket)
	})
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "STORAGE_BUCKET=from-dotenv\nSTORAGE_DRIVER=memory\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Storage.Bucket)
	assert.Equal(t, storage.DriverMemory, cfg.Storage.Driver)
}

func TestLoadConfig_InvalidDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "gcs")

	_, err := config.LoadConfig(t.TempDir())
	assert.Error(t, err)
}

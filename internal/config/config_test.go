package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, "image/jpeg", cfg.Upload.DefaultMime)
	assert.Equal(t, 50, cfg.Migration.PromoteBatchSize)
	assert.Equal(t, 500, cfg.Migration.DemoteBatchSize)
	assert.Equal(t, 5*time.Second, cfg.Migration.VerifyTimeout)
	assert.Empty(t, cfg.Storage.Type)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
  env: production
database:
  driver: sqlite
  url: file:portfolio.db
storage:
  type: local
  base_path: /var/media
upload:
  max_size: 2048
cors:
  allowed_origins:
    - https://portfolio.example.com
migration:
  verify_timeout: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("ADMIN_TOKEN", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env wins over the file")
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:portfolio.db", cfg.Database.DSN)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "/var/media", cfg.Storage.BasePath)
	assert.Equal(t, "secret", cfg.Admin.Token)
	assert.Equal(t, int64(2048), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"https://portfolio.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.Migration.VerifyTimeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_IgnoresBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

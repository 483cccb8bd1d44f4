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
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "./data/billsync.db", cfg.Database.Path)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
http:
  port: 9090
database:
  path: /tmp/other.db
auth:
  jwt_secret: file-secret
  token_duration: 1h
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched values keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt_secret: file-secret\n"), 0o644))

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

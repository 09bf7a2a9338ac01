package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: "dev-secret"
  expire_hours: 2
storage:
  type: minio
translation:
  libretranslate_url: "http://libre:5000"
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "admin", cfg.Admin.Login)
	assert.Equal(t, 10*time.Second, cfg.Translation.Timeout())
	assert.Equal(t, 10, cfg.Translation.MaxConcurrent)
	assert.Equal(t, "http://libre:5000", cfg.Translation.LibreTranslateURL)
	assert.NotEmpty(t, cfg.Translation.MyMemoryURL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "jwt:\n  secret: from-file\nstorage:\n  type: minio\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("GOOGLE_TRANSLATE_API_KEY", "g-key")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "g-key", cfg.Translation.GoogleAPIKey)
}

func TestLoadConfig_ReleaseModeChecks(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\njwt:\n  secret: short\nstorage:\n  type: minio\n")
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "too short")

	dir = writeConfig(t, "server:\n  mode: release\njwt:\n  secret: 0123456789abcdef0123456789abcdef\nstorage:\n  type: minio\n")
	_, err = LoadConfig(dir)
	assert.ErrorContains(t, err, "admin password")

	dir = writeConfig(t, "storage:\n  type: minio\n")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig(dir)
	assert.Error(t, err)
}

func TestTranslationTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, TranslationConfig{}.Timeout())
	assert.Equal(t, 3*time.Second, TranslationConfig{TimeoutSeconds: 3}.Timeout())
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"imagehub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadPath_Defaults(t *testing.T) {
	path := writeConfig(t, `dsn: "postgres://u:p@localhost:5432/db"`)

	cfg, err := config.LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 3, cfg.SlugRetries)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, config.StorageLocal, cfg.FileStorage.Provider)
	assert.Equal(t, "./media", cfg.FileStorage.BaseDir)
	assert.Equal(t, int64(10<<20), cfg.FileStorage.MaxSize)
}

func TestLoadPath_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
slug_retries: 2
`)
	t.Setenv("SLUG_RETRIES", "5")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.SlugRetries)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}

func TestLoadPath_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
file_storage:
  provider: "s3"
`)
		_, err := config.LoadPath(path)
		assert.ErrorContains(t, err, "s3.bucket")
	})

	t.Run("unknown provider", func(t *testing.T) {
		path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
file_storage:
  provider: "ftp"
`)
		_, err := config.LoadPath(path)
		assert.ErrorContains(t, err, "unknown file_storage.provider")
	})

	t.Run("negative retries", func(t *testing.T) {
		path := writeConfig(t, `
dsn: "postgres://u:p@localhost:5432/db"
slug_retries: -1
`)
		_, err := config.LoadPath(path)
		assert.ErrorContains(t, err, "slug_retries")
	})

	t.Run("missing dsn", func(t *testing.T) {
		path := writeConfig(t, `env: "local"`)
		_, err := config.LoadPath(path)
		assert.Error(t, err)
	})
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}

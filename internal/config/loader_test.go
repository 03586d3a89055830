package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "studypulse.db", cfg.DatabasePath)
	assert.Equal(t, 75.0, cfg.NearCompletionThreshold)
	assert.Equal(t, 5, cfg.RecentUnlockLimit)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STUDYPULSE_LOG_LEVEL", "debug")
	t.Setenv("STUDYPULSE_DATABASE_PATH", "/tmp/alt.db")
	t.Setenv("STUDYPULSE_RECENT_UNLOCK_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/alt.db", cfg.DatabasePath)
	assert.Equal(t, 3, cfg.RecentUnlockLimit)
	// Untouched keys keep their defaults.
	assert.Equal(t, 75.0, cfg.NearCompletionThreshold)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: warn
near_completion_threshold: 60
category_weights:
  streak: 2.5
`), 0o644))
	t.Setenv("STUDYPULSE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 60.0, cfg.NearCompletionThreshold)
	assert.Equal(t, 2.5, cfg.CategoryWeights["streak"])
}

// Env wins over file for the same key.
func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))
	t.Setenv("STUDYPULSE_CONFIG", path)
	t.Setenv("STUDYPULSE_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("STUDYPULSE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.ErrorIs(t, err, ErrLoadConfig)
	})

	t.Run("empty database path", func(t *testing.T) {
		t.Setenv("STUDYPULSE_DATABASE_PATH", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		t.Setenv("STUDYPULSE_NEAR_COMPLETION_THRESHOLD", "150")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("non-positive recent limit", func(t *testing.T) {
		t.Setenv("STUDYPULSE_RECENT_UNLOCK_LIMIT", "0")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, ":8080", Default().Addr())
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HAND_SIZE", "10")
	t.Setenv("CHOOSE_SECONDS", "45")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 10, cfg.HandSize)
	assert.Equal(t, 45, cfg.ChooseSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 69, cfg.RoundLimit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MAX_PLAYERS", "41")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_PLAYERS")

	t.Setenv("MAX_PLAYERS", "many")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROUND_LIMIT=12\n"), 0o644))
	t.Setenv("ROUND_LIMIT", "")
	require.NoError(t, os.Unsetenv("ROUND_LIMIT"))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.RoundLimit)
}

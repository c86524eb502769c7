package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("sandbox")
	cfg.Reconcile.WindowDays = 14
	cfg.Audit.Dir = "audit"

	path := filepath.Join(t.TempDir(), "spacesweep.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sandbox", got.API.Environment)
	assert.Equal(t, DefaultTokenEnv, got.API.TokenEnv)
	assert.Equal(t, 14, got.Reconcile.WindowDays)
	assert.Equal(t, "audit", got.Audit.Dir)
}

func TestDefaults(t *testing.T) {
	cfg := Default("live")

	assert.Equal(t, "live", cfg.API.Environment)
	assert.Equal(t, DefaultTokenEnv, cfg.API.TokenEnv)
	assert.Empty(t, cfg.API.BaseURL)
	assert.Equal(t, DefaultWindowDays, cfg.Reconcile.WindowDays)
	assert.Equal(t, "logs", cfg.Audit.Dir)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("sandbox")
	path := filepath.Join(t.TempDir(), "spacesweep.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "environment: sandbox")
	assert.Contains(t, contents, "token_env: STARLING_ACCESS_TOKEN")
	assert.Contains(t, contents, "window_days: 7")
}

func TestToken(t *testing.T) {
	cfg := Default("live")
	cfg.API.TokenEnv = "SPACESWEEP_TEST_TOKEN"

	t.Setenv("SPACESWEEP_TEST_TOKEN", "secret-token")
	token, err := cfg.Token()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)
}

func TestTokenMissing(t *testing.T) {
	cfg := Default("live")
	cfg.API.TokenEnv = "SPACESWEEP_UNSET_TOKEN"

	_, err := cfg.Token()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPACESWEEP_UNSET_TOKEN")
}

func TestWindowDaysDefaulted(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultWindowDays, cfg.WindowDays())

	cfg.Reconcile.WindowDays = 3
	assert.Equal(t, 3, cfg.WindowDays())
}

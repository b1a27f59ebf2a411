package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/config"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func TestApplyEnvironment_Overrides(t *testing.T) {
	t.Setenv(config.EnvHome, "/tmp/xrb-home")
	t.Setenv(config.EnvStorageBackend, "BADGER")
	t.Setenv(config.EnvStoragePath, "/tmp/xrb-db")
	t.Setenv(config.EnvOutputFormat, "JSON")
	t.Setenv(config.EnvVerbose, "true")
	t.Setenv(config.EnvLogLevel, "Debug")
	t.Setenv(config.EnvLogFile, "/tmp/xrb.log")
	t.Setenv(config.EnvMinPasswordLength, "16")

	cfg := config.Defaults()
	require.NoError(t, config.ApplyEnvironment(cfg))

	assert.Equal(t, "/tmp/xrb-home", cfg.Home)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/xrb-db", cfg.Storage.Path)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/xrb.log", cfg.Logging.File)
	assert.Equal(t, 16, cfg.Security.MinPasswordLength)
}

func TestApplyEnvironment_UnsetLeavesDefaults(t *testing.T) {
	// HOME is always set; it must not leak into the config.
	t.Setenv("HOME", "/should/not/be/used")

	cfg := config.Defaults()
	require.NoError(t, config.ApplyEnvironment(cfg))
	assert.Equal(t, config.Defaults(), cfg)
}

func TestApplyEnvironment_VerboseFalse(t *testing.T) {
	t.Setenv(config.EnvVerbose, "0")

	cfg := config.Defaults()
	cfg.Output.Verbose = true
	require.NoError(t, config.ApplyEnvironment(cfg))
	assert.False(t, cfg.Output.Verbose)
}

func TestApplyEnvironment_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad bool", config.EnvVerbose, "maybe"},
		{"bad int", config.EnvMinPasswordLength, "eight"},
		{"bad backend", config.EnvStorageBackend, "postgres"},
		{"bad format", config.EnvOutputFormat, "yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			err := config.ApplyEnvironment(config.Defaults())
			require.ErrorIs(t, err, walleterr.ErrConfigInvalid)
		})
	}
}

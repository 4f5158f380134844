package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"HACKMD_CONFIG": "/path/to/config.json",

		"HACKMD_API_URL":     "https://hackmd.example.com/v1",
		"HACKMD_API_TIMEOUT": "20s",

		"HACKMD_RETRY_MAX_ATTEMPTS": "5",
		"HACKMD_RETRY_BASE_WAIT":    "250ms",
		"HACKMD_RETRY_MAX_WAIT":     "10s",

		"HACKMD_CREDENTIALS_FILE":    "/home/user/.config/hackmd/config.json",
		"HACKMD_CREDENTIALS_PROFILE": "work",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "https://hackmd.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.API.RequestTimeout)

	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseWait)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxWait)

	assert.Equal(t, "/home/user/.config/hackmd/config.json", cfg.Credentials.FilePath)
	assert.Equal(t, "work", cfg.Credentials.Profile)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"HACKMD_API_URL": "https://api.hackmd.io/v1",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "https://api.hackmd.io/v1", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.RequestTimeout)
	assert.Zero(t, cfg.Retry.MaxAttempts)
	assert.Empty(t, cfg.Credentials.Profile)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"HACKMD_API_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
}

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for hackmd-cli.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, CLI overrides, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// API holds the remote HackMD API endpoint settings.
	API API `envPrefix:"HACKMD_"`

	// Retry holds the retry/backoff policy for outbound requests.
	Retry Retry `envPrefix:"HACKMD_RETRY_"`

	// Credentials holds the credential store location and the active
	// profile selection.
	Credentials Credentials `envPrefix:"HACKMD_CREDENTIALS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and CLI overrides.
	// Populated via the HACKMD_CONFIG environment variable or the
	// --config flag.
	JSONFilePath string `env:"HACKMD_CONFIG"`
}

// API holds the remote endpoint settings for the HackMD API.
type API struct {
	// BaseURL is the HackMD API base URL, including the version prefix
	// (e.g. "https://api.hackmd.io/v1").
	// Env: HACKMD_API_URL
	BaseURL string `env:"API_URL"`

	// RequestTimeout is the maximum duration allowed for a single
	// outbound request attempt (e.g. "15s", "1m").
	// Env: HACKMD_API_TIMEOUT
	RequestTimeout time.Duration `env:"API_TIMEOUT"`
}

// Retry holds the bounded retry/backoff policy applied to transient
// request failures.
type Retry struct {
	// MaxAttempts is the total number of attempts per request, the
	// initial one included.
	// Env: HACKMD_RETRY_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BaseWait is the backoff delay before the first retry; subsequent
	// delays double up to MaxWait.
	// Env: HACKMD_RETRY_BASE_WAIT
	BaseWait time.Duration `env:"BASE_WAIT"`

	// MaxWait caps the per-retry backoff delay, including server-provided
	// Retry-After values.
	// Env: HACKMD_RETRY_MAX_WAIT
	MaxWait time.Duration `env:"MAX_WAIT"`
}

// Credentials holds the location of the persisted credential file and the
// profile selection.
type Credentials struct {
	// FilePath is the path of the credential file. When empty, the store
	// defaults to <user config dir>/hackmd/config.json.
	// Env: HACKMD_CREDENTIALS_FILE
	FilePath string `env:"FILE"`

	// Profile is the named credential profile commands operate on.
	// Env: HACKMD_CREDENTIALS_PROFILE
	Profile string `env:"PROFILE"`
}

// getStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. CLI overrides
//  3. JSON file (path resolved from sources 1 and 2)
func getStructuredConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withOverrides(overrides).
		withJSON().
		build()
}

package config

import (
	"fmt"
	"time"
)

// Default values applied by [GetClientConfig] when no source provides a
// field. The base URL matches the public HackMD API; HACKMD_API_URL
// overrides it for self-hosted deployments.
const (
	DefaultBaseURL        = "https://api.hackmd.io/v1"
	DefaultRequestTimeout = 15 * time.Second
	DefaultMaxAttempts    = 3
	DefaultBaseWait       = 500 * time.Millisecond
	DefaultMaxWait        = 30 * time.Second
	DefaultProfile        = "default"
)

// ClientAPI holds the remote endpoint settings used by the transport layer.
type ClientAPI struct {
	// BaseURL is the HackMD API base URL including the version prefix.
	BaseURL string
	// RequestTimeout is the per-attempt timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientRetry holds the retry/backoff budget used by the transport layer.
type ClientRetry struct {
	// MaxAttempts is the total attempts per request, the initial one
	// included.
	MaxAttempts int
	// BaseWait is the delay before the first retry; doubled per attempt.
	BaseWait time.Duration
	// MaxWait caps every backoff delay.
	MaxWait time.Duration
}

// ClientCredentials holds the credential store settings.
type ClientCredentials struct {
	// FilePath is the credential file location; empty means the
	// platform-default path under the user config directory.
	FilePath string
	// Profile is the active credential profile.
	Profile string
}

// ClientConfig is the top-level runtime configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// API contains the remote endpoint settings.
	API ClientAPI
	// Retry contains the retry/backoff budget.
	Retry ClientRetry
	// Credentials contains the credential store settings.
	Credentials ClientCredentials
}

// GetClientConfig builds and validates the runtime config view from the
// merged structured configuration.
//
// It loads the base config via all sources, maps the fields relevant to the
// client runtime, fills defaults for anything left unset, and validates the
// resulting [ClientConfig]. overrides carries flag values collected by the
// CLI layer and may be nil.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := getStructuredConfig(overrides)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		API: ClientAPI{
			BaseURL:        cfg.API.BaseURL,
			RequestTimeout: cfg.API.RequestTimeout,
		},
		Retry: ClientRetry{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseWait:    cfg.Retry.BaseWait,
			MaxWait:     cfg.Retry.MaxWait,
		},
		Credentials: ClientCredentials{
			FilePath: cfg.Credentials.FilePath,
			Profile:  cfg.Credentials.Profile,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.RequestTimeout <= 0 {
		cfg.API.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Retry.BaseWait <= 0 {
		cfg.Retry.BaseWait = DefaultBaseWait
	}
	if cfg.Retry.MaxWait <= 0 {
		cfg.Retry.MaxWait = DefaultMaxWait
	}
	if cfg.Credentials.Profile == "" {
		cfg.Credentials.Profile = DefaultProfile
	}
}

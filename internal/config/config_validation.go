package config

import "net/url"

// validate checks that the final merged [ClientConfig] satisfies all
// invariants the transport and credential layers rely on.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAPIConfigs
	}

	if cfg.Retry.MaxAttempts < 1 || cfg.Retry.BaseWait <= 0 || cfg.Retry.MaxWait < cfg.Retry.BaseWait {
		return ErrInvalidRetryConfigs
	}

	if cfg.Credentials.Profile == "" {
		return ErrInvalidCredentialConfigs
	}

	return nil
}

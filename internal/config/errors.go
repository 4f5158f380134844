package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAPIConfigs indicates invalid API endpoint settings
	// (for example, a base URL without scheme or host).
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
	// ErrInvalidRetryConfigs indicates an unusable retry budget
	// (for example, zero attempts or a max wait below the base wait).
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")
	// ErrInvalidCredentialConfigs indicates invalid credential store
	// settings (for example, an empty profile name).
	ErrInvalidCredentialConfigs = errors.New("invalid credentials configuration")
)

package credential

import "errors"

var (
	// ErrNoCredential means no credential is stored for the requested
	// profile. Callers treat it as "not logged in", not as a failure.
	ErrNoCredential = errors.New("no stored credential")
)

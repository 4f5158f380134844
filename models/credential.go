package models

import "time"

// Credential is a stored bearer token together with its verification
// metadata. It is owned exclusively by the credential store and mutated
// only through login and logout.
type Credential struct {
	// Token is the opaque bearer token sent in the Authorization header.
	// Never logged and never exposed unmasked in command output.
	Token string `json:"api_token"`

	// BaseURL is the API base URL the token was verified against.
	BaseURL string `json:"api_base_url,omitempty"`

	// VerifiedAt is the time the token was last validated against the
	// remote identity endpoint.
	VerifiedAt time.Time `json:"verified_at,omitempty"`

	// User is the identity returned by the server when the token was
	// last verified. Cached so that `auth status` can report an owner
	// even when the network is unreachable.
	User *User `json:"user,omitempty"`
}

// MaskedToken returns the token with all but the leading and trailing
// characters replaced, safe for display and logs.
func (c Credential) MaskedToken() string {
	if len(c.Token) <= 12 {
		return "***"
	}
	return c.Token[:8] + "..." + c.Token[len(c.Token)-4:]
}

// AuthState is the outcome of an authentication status check.
type AuthState string

const (
	// StateAuthenticated means a credential exists and the server
	// accepted it.
	StateAuthenticated AuthState = "authenticated"

	// StateUnauthenticated means no credential is stored or the server
	// rejected the stored one.
	StateUnauthenticated AuthState = "unauthenticated"

	// StateUnknown means a credential exists but the server could not be
	// reached to verify it. Distinct from StateUnauthenticated so that
	// callers do not prompt for a needless re-login on network failures.
	StateUnknown AuthState = "unknown"
)

// AuthStatus is the result of an `auth status` check.
type AuthStatus struct {
	// State classifies the check outcome.
	State AuthState `json:"state"`

	// Profile is the credential profile the check was performed for.
	Profile string `json:"profile,omitempty"`

	// User is the verified (or cached, when State is StateUnknown)
	// account identity.
	User *User `json:"user,omitempty"`

	// MaskedToken is the display-safe form of the stored token.
	MaskedToken string `json:"token,omitempty"`

	// VerifiedAt is the time the token was last confirmed valid.
	VerifiedAt time.Time `json:"verified_at,omitempty"`
}

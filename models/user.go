package models

// User is the identity record returned by the remote API's GET /me endpoint.
// It is used to verify a token during login and to display the current
// account in `auth status`.
type User struct {
	// ID is the server-side account identifier.
	ID string `json:"id"`

	// Name is the display name of the account.
	Name string `json:"name"`

	// Email is the account email address. May be empty for accounts
	// registered through third-party identity providers.
	Email string `json:"email,omitempty"`

	// UserPath is the account's URL path segment (hackmd.io/@<path>).
	UserPath string `json:"userPath,omitempty"`
}

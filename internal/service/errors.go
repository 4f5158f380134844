package service

import "errors"

var (
	// ErrNotAuthenticated means no credential is stored (or the stored
	// one is known invalid); operations fail with it before any network
	// call is made.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoginRejected means the server refused the token offered to
	// Login.
	ErrLoginRejected = errors.New("login rejected by server")

	// ErrLocalIO wraps credential or template storage failures
	// (unreadable file, failed write).
	ErrLocalIO = errors.New("local storage failure")
)

package adapter

import "errors"

var (
	// ErrNoToken is returned locally, before any network call, when an
	// authenticated operation is attempted without a stored token.
	ErrNoToken = errors.New("no api token set")

	// ErrBadRequest maps HTTP 400 and any other non-retryable 4xx the
	// mapper has no dedicated sentinel for.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized maps HTTP 401: the server rejected the token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden maps HTTP 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrTransient wraps every condition that was (or would have been)
	// retried: connection failures, timeouts, HTTP 5xx, HTTP 429 and an
	// open circuit breaker. Surfaced only after the retry budget is
	// exhausted.
	ErrTransient = errors.New("transient failure")
)

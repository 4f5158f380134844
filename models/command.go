package models

// CommandRequest is a parsed CLI command ready for dispatch: a verb acting
// on a resource with named parameters. It is immutable once constructed;
// the router validates it before any handler or network call runs.
type CommandRequest struct {
	// Resource is the noun the command operates on ("auth", "note",
	// "team", "template").
	Resource string

	// Verb is the operation applied to the resource ("list", "get",
	// "create", "update", "delete", "login", "status", "logout", ...).
	Verb string

	// Params carries the command parameters by name (note id, title,
	// token, profile, ...). Handlers read but never mutate it.
	Params map[string]string
}

// Param returns the named parameter, or an empty string when absent.
func (r CommandRequest) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// ErrorClass is the stable machine-readable classification every failed
// command resolves to. Each class maps to a distinct process exit code.
type ErrorClass string

const (
	// ClassUnauthenticated: no credential is stored, or the stored one
	// is known to be invalid. Reported before any network call.
	ClassUnauthenticated ErrorClass = "unauthenticated"

	// ClassAuthError: the server rejected a login or token validation.
	ClassAuthError ErrorClass = "auth_error"

	// ClassClientError: the server answered 4xx; never retried.
	ClassClientError ErrorClass = "client_error"

	// ClassTransientError: timeouts, connection failures and 5xx
	// responses that survived the retry budget.
	ClassTransientError ErrorClass = "transient_error"

	// ClassUnsupportedCommand: no handler is registered for the
	// (verb, resource) pair.
	ClassUnsupportedCommand ErrorClass = "unsupported_command"

	// ClassLocalIOError: the credential or template store could not be
	// read or written.
	ClassLocalIOError ErrorClass = "local_io_error"
)

// ExitCode returns the process exit code associated with the class.
// Zero is reserved for success.
func (c ErrorClass) ExitCode() int {
	switch c {
	case ClassUnauthenticated:
		return 2
	case ClassAuthError:
		return 3
	case ClassClientError:
		return 4
	case ClassTransientError:
		return 5
	case ClassUnsupportedCommand:
		return 6
	case ClassLocalIOError:
		return 7
	default:
		return 1
	}
}

// CommandError is a classified command failure: a stable class code plus a
// human-readable message. It is the only error shape that crosses the CLI
// boundary.
type CommandError struct {
	Class   ErrorClass `json:"code"`
	Message string     `json:"message"`
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return string(e.Class) + ": " + e.Message
}

// CommandResult is the terminal outcome of a dispatched command: either a
// display-ready payload or exactly one classified error, never both and
// never neither.
type CommandResult struct {
	// Payload is the structured success value (a note, a slice of notes,
	// an AuthStatus, ...). Nil for commands with no output, such as
	// logout.
	Payload any

	// Err is the classified failure. Nil on success.
	Err *CommandError
}

// Succeeded reports whether the command resolved without error.
func (r CommandResult) Succeeded() bool {
	return r.Err == nil
}

// ExitCode returns 0 for a successful result and the error class code
// otherwise.
func (r CommandResult) ExitCode() int {
	if r.Err == nil {
		return 0
	}
	return r.Err.Class.ExitCode()
}

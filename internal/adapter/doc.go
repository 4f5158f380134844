// Package adapter provides the transport layer for communicating with the
// HackMD REST API.
//
// The primary abstraction is [APIClient], which decouples the service layer
// from the underlying protocol. The shipped implementation
// ([NewHTTPAPIClient]) wraps resty with bearer-token injection, a bounded
// retry state machine with exponential backoff and jitter (retry.go), and a
// circuit breaker that sheds load while the remote service is failing.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401,
// [ErrTransient] for anything worth retrying).
package adapter

import (
	"context"

	"github.com/hackmd-tools/hackmd-cli/models"
)

//go:generate mockgen -source=doc.go -destination=../mock/api_client_mock.go -package=mock

// APIClient defines transport-agnostic communication with the HackMD API.
// Implementations are responsible for serialisation, authentication header
// management, retry policy, and mapping transport-level errors to the
// sentinel values defined in this package.
//
// Every method except VerifyToken requires a bearer token to have been set
// via SetToken; calls made without one fail locally with [ErrNoToken]
// before any network traffic occurs.
type APIClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or
	// an empty string if no token has been set yet.
	Token() string

	// VerifyToken checks an explicit candidate token against the remote
	// identity endpoint without touching the stored token. Used by the
	// login flow before a credential is persisted. Returns the account
	// identity on success.
	VerifyToken(ctx context.Context, token string) (models.User, error)

	// Identity fetches the account identity for the stored token.
	Identity(ctx context.Context) (models.User, error)

	// ListNotes returns the authenticated user's notes. List responses
	// omit note content.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// GetNote fetches a single note, content included.
	GetNote(ctx context.Context, noteID string) (models.Note, error)

	// CreateNote creates a note from the draft and returns the
	// server-side record. The request carries a client-generated
	// idempotency key so transient-failure retries cannot create
	// duplicates.
	CreateNote(ctx context.Context, draft models.NoteDraft) (models.Note, error)

	// UpdateNote applies the non-zero draft fields to an existing note.
	UpdateNote(ctx context.Context, noteID string, draft models.NoteDraft) error

	// DeleteNote removes a note. Returns [ErrNotFound] (wrapped) when the
	// note does not exist.
	DeleteNote(ctx context.Context, noteID string) error

	// ListTeams returns the teams the authenticated user belongs to.
	ListTeams(ctx context.Context) ([]models.Team, error)

	// ListTeamNotes returns the notes of the team addressed by its URL
	// path segment.
	ListTeamNotes(ctx context.Context, teamPath string) ([]models.Note, error)
}

package service

import (
	"context"

	"github.com/hackmd-tools/hackmd-cli/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AuthService owns the credential lifecycle: obtaining a token, checking
// it, and discarding it. It is the only service allowed to mutate the
// credential store.
type AuthService interface {
	// Login validates the pasted token against the remote identity
	// endpoint and, only on success, persists it under the named profile
	// and marks that profile active. A rejected token leaves any prior
	// credential untouched. Returns the resulting authenticated status.
	Login(ctx context.Context, token, profile string) (models.AuthStatus, error)

	// Status reads the persisted credential for the profile (the active
	// one when empty) and re-validates it remotely. Network failure
	// degrades the result to [models.StateUnknown] with the cached
	// identity rather than falsely reporting logged-out. The only state
	// mutation is refreshing the verification timestamp on success.
	Status(ctx context.Context, profile string) (models.AuthStatus, error)

	// Logout deletes the persisted credential for the profile.
	// Idempotent: logging out while logged out is not an error.
	Logout(ctx context.Context, profile string) error
}

// NoteService exposes note CRUD against the remote API. Every operation
// requires a stored credential and fails fast with [ErrNotAuthenticated]
// before any network call when none exists.
type NoteService interface {
	// List returns the user's notes, newest changes last as served by
	// the API. Content is not included.
	List(ctx context.Context) ([]models.Note, error)

	// Get fetches a single note with its content.
	Get(ctx context.Context, noteID string) (models.Note, error)

	// Create creates a note from the draft and returns the server
	// record.
	Create(ctx context.Context, draft models.NoteDraft) (models.Note, error)

	// Update applies the non-zero draft fields to an existing note.
	Update(ctx context.Context, noteID string, draft models.NoteDraft) error

	// Delete removes a note.
	Delete(ctx context.Context, noteID string) error
}

// TeamService exposes read access to the user's teams.
type TeamService interface {
	// List returns the teams the user belongs to.
	List(ctx context.Context) ([]models.Team, error)

	// ListNotes returns the notes of the team addressed by its URL path
	// segment.
	ListNotes(ctx context.Context, teamPath string) ([]models.Note, error)
}

// TemplateService manages the local markdown template library used by
// `note create --template` and the `template` commands.
type TemplateService interface {
	// Init seeds the template directory with the built-in templates,
	// skipping any that already exist. Returns the names it created.
	Init() ([]string, error)

	// List returns the names of the installed templates.
	List() ([]string, error)

	// Get returns the raw template body. Fails with a not-found error
	// the implementation defines when the template does not exist.
	Get(name string) (string, error)

	// Render substitutes {{variable}} placeholders in the named template
	// with vars plus the built-in date/time variables.
	Render(name string, vars map[string]string) (string, error)

	// Save creates or overwrites a template.
	Save(name, content string) error
}

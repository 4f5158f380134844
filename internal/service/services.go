// Package service implements the application logic between the command
// router and the outer layers: the HTTP adapter, the credential store and
// the template library.
package service

import (
	"errors"
	"fmt"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/credential"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
)

// Services aggregates the application services the router dispatches to.
type Services struct {
	Auth      AuthService
	Notes     NoteService
	Teams     TeamService
	Templates TemplateService
}

// Deps carries the constructed infrastructure Services are built on.
type Deps struct {
	API       adapter.APIClient
	Store     credential.Store
	Templates TemplateService
	Config    config.ClientConfig
	Logger    *logger.Logger
}

// NewServices wires the service layer.
func NewServices(deps Deps) *Services {
	sess := &session{
		api:     deps.API,
		store:   deps.Store,
		profile: deps.Config.Credentials.Profile,
	}

	return &Services{
		Auth:      newAuthService(deps),
		Notes:     newNoteService(deps, sess),
		Teams:     newTeamService(deps, sess),
		Templates: deps.Templates,
	}
}

// session lazily binds the stored credential to the API client. Note and
// team operations share one per process invocation.
type session struct {
	api     adapter.APIClient
	store   credential.Store
	profile string
}

// ensure loads the stored credential into the API client if it carries no
// token yet. Fails with [ErrNotAuthenticated] before any network traffic
// when nothing is stored.
func (s *session) ensure() error {
	if s.api.Token() != "" {
		return nil
	}

	cred, err := s.store.Load(s.profile)
	if errors.Is(err, credential.ErrNoCredential) {
		return ErrNotAuthenticated
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocalIO, err)
	}

	s.api.SetToken(cred.Token)
	return nil
}

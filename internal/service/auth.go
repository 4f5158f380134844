package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/credential"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

type authService struct {
	api     adapter.APIClient
	store   credential.Store
	baseURL string
	profile string
	now     func() time.Time

	logger *logger.Logger
}

func newAuthService(deps Deps) *authService {
	return &authService{
		api:     deps.API,
		store:   deps.Store,
		baseURL: deps.Config.API.BaseURL,
		profile: deps.Config.Credentials.Profile,
		now:     time.Now,
		logger:  deps.Logger.GetChildLogger("service-auth"),
	}
}

// Login implements [AuthService]. The token is verified against the remote
// identity endpoint before anything is written, so a rejected or
// unreachable login cannot clobber a previously working credential.
func (s *authService) Login(ctx context.Context, token, profile string) (models.AuthStatus, error) {
	if profile == "" {
		profile = s.profile
	}

	user, err := s.api.VerifyToken(ctx, token)
	if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrForbidden) {
		s.logger.Info().Str("profile", profile).Msg("login rejected")
		return models.AuthStatus{}, fmt.Errorf("%w: %v", ErrLoginRejected, err)
	}
	if err != nil {
		return models.AuthStatus{}, err
	}

	cred := models.Credential{
		Token:      token,
		BaseURL:    s.baseURL,
		VerifiedAt: s.now(),
		User:       &user,
	}
	if err := s.store.Save(profile, cred); err != nil {
		return models.AuthStatus{}, fmt.Errorf("%w: %v", ErrLocalIO, err)
	}

	s.api.SetToken(token)
	s.logger.Info().Str("profile", profile).Str("user", user.Name).Msg("login succeeded")

	return models.AuthStatus{
		State:       models.StateAuthenticated,
		Profile:     profile,
		User:        &user,
		MaskedToken: cred.MaskedToken(),
		VerifiedAt:  cred.VerifiedAt,
	}, nil
}

// Status implements [AuthService].
func (s *authService) Status(ctx context.Context, profile string) (models.AuthStatus, error) {
	if profile == "" {
		profile = s.profile
	}

	cred, err := s.store.Load(profile)
	if errors.Is(err, credential.ErrNoCredential) {
		return models.AuthStatus{State: models.StateUnauthenticated, Profile: profile}, nil
	}
	if err != nil {
		return models.AuthStatus{}, fmt.Errorf("%w: %v", ErrLocalIO, err)
	}

	status := models.AuthStatus{
		Profile:     profile,
		User:        cred.User,
		MaskedToken: cred.MaskedToken(),
		VerifiedAt:  cred.VerifiedAt,
	}

	user, err := s.api.VerifyToken(ctx, cred.Token)
	switch {
	case err == nil:
		// refresh the cached identity and verification timestamp
		status.State = models.StateAuthenticated
		status.User = &user
		status.VerifiedAt = s.now()
		cred.User = &user
		cred.VerifiedAt = status.VerifiedAt
		if saveErr := s.store.Save(profile, cred); saveErr != nil {
			s.logger.Error().Err(saveErr).Msg("failed to refresh stored credential")
		}
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		status.State = models.StateUnauthenticated
	case errors.Is(err, context.Canceled):
		return models.AuthStatus{}, err
	default:
		// the server could not be reached: report the cached identity
		// rather than falsely claiming logged-out
		s.logger.Info().Err(err).Str("profile", profile).Msg("token check unreachable, status unknown")
		status.State = models.StateUnknown
	}

	return status, nil
}

// Logout implements [AuthService].
func (s *authService) Logout(_ context.Context, profile string) error {
	if profile == "" {
		profile = s.profile
	}

	if err := s.store.Delete(profile); err != nil {
		return fmt.Errorf("%w: %v", ErrLocalIO, err)
	}

	s.api.SetToken("")
	s.logger.Info().Str("profile", profile).Msg("logged out")
	return nil
}

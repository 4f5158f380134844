package service

import (
	"context"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

type teamService struct {
	api     adapter.APIClient
	session *session

	logger *logger.Logger
}

func newTeamService(deps Deps, sess *session) *teamService {
	return &teamService{
		api:     deps.API,
		session: sess,
		logger:  deps.Logger.GetChildLogger("service-teams"),
	}
}

// List implements [TeamService].
func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	if err := s.session.ensure(); err != nil {
		return nil, err
	}
	return s.api.ListTeams(ctx)
}

// ListNotes implements [TeamService].
func (s *teamService) ListNotes(ctx context.Context, teamPath string) ([]models.Note, error) {
	if err := s.session.ensure(); err != nil {
		return nil, err
	}
	return s.api.ListTeamNotes(ctx, teamPath)
}

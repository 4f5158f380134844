package service

import (
	"context"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

type noteService struct {
	api     adapter.APIClient
	session *session

	logger *logger.Logger
}

func newNoteService(deps Deps, sess *session) *noteService {
	return &noteService{
		api:     deps.API,
		session: sess,
		logger:  deps.Logger.GetChildLogger("service-notes"),
	}
}

// List implements [NoteService].
func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	if err := s.session.ensure(); err != nil {
		return nil, err
	}
	return s.api.ListNotes(ctx)
}

// Get implements [NoteService].
func (s *noteService) Get(ctx context.Context, noteID string) (models.Note, error) {
	if err := s.session.ensure(); err != nil {
		return models.Note{}, err
	}
	return s.api.GetNote(ctx, noteID)
}

// Create implements [NoteService].
func (s *noteService) Create(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	if err := s.session.ensure(); err != nil {
		return models.Note{}, err
	}

	note, err := s.api.CreateNote(ctx, draft)
	if err != nil {
		return models.Note{}, err
	}

	s.logger.Info().Str("note_id", note.ID).Msg("note created")
	return note, nil
}

// Update implements [NoteService].
func (s *noteService) Update(ctx context.Context, noteID string, draft models.NoteDraft) error {
	if err := s.session.ensure(); err != nil {
		return err
	}

	if err := s.api.UpdateNote(ctx, noteID, draft); err != nil {
		return err
	}

	s.logger.Info().Str("note_id", noteID).Msg("note updated")
	return nil
}

// Delete implements [NoteService].
func (s *noteService) Delete(ctx context.Context, noteID string) error {
	if err := s.session.ensure(); err != nil {
		return err
	}

	if err := s.api.DeleteNote(ctx, noteID); err != nil {
		return err
	}

	s.logger.Info().Str("note_id", noteID).Msg("note deleted")
	return nil
}

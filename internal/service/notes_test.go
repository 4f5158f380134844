package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/credential"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/internal/mock"
	"github.com/hackmd-tools/hackmd-cli/models"
)

func newTestServices(t *testing.T, ctrl *gomock.Controller) (*Services, *mock.MockAPIClient, *mock.MockStore) {
	t.Helper()
	mockAPI := mock.NewMockAPIClient(ctrl)
	mockStore := mock.NewMockStore(ctrl)

	svcs := NewServices(Deps{
		API:   mockAPI,
		Store: mockStore,
		Config: config.ClientConfig{
			API:         config.ClientAPI{BaseURL: "https://api.hackmd.io/v1"},
			Credentials: config.ClientCredentials{Profile: "default"},
		},
		Logger: logger.Nop(),
	})

	return svcs, mockAPI, mockStore
}

// ── Session binding ──────────────────────────────────────────────────────────

func TestNotes_List_LoadsStoredCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, mockStore := newTestServices(t, ctrl)
	ctx := context.Background()

	notes := []models.Note{{ID: "n-1", Title: "First"}}

	gomock.InOrder(
		mockAPI.EXPECT().Token().Return(""),
		mockStore.EXPECT().Load("default").Return(models.Credential{Token: "tok-stored"}, nil),
		mockAPI.EXPECT().SetToken("tok-stored"),
		mockAPI.EXPECT().ListNotes(ctx).Return(notes, nil),
	)

	got, err := svcs.Notes.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}

func TestNotes_List_NoCredentialFailsBeforeNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, mockStore := newTestServices(t, ctrl)

	// ListNotes is never expected: the call must not reach the network
	mockAPI.EXPECT().Token().Return("")
	mockStore.EXPECT().Load("default").Return(models.Credential{}, credential.ErrNoCredential)

	_, err := svcs.Notes.List(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestNotes_List_UnreadableStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, mockStore := newTestServices(t, ctrl)

	mockAPI.EXPECT().Token().Return("")
	mockStore.EXPECT().Load("default").Return(models.Credential{}, errors.New("permission denied"))

	_, err := svcs.Notes.List(context.Background())
	assert.ErrorIs(t, err, ErrLocalIO)
}

func TestNotes_List_ReusesBoundToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	// token already bound: the store must not be consulted again
	mockAPI.EXPECT().Token().Return("tok-bound")
	mockAPI.EXPECT().ListNotes(ctx).Return(nil, nil)

	_, err := svcs.Notes.List(ctx)
	require.NoError(t, err)
}

// ── CRUD passthrough ─────────────────────────────────────────────────────────

func TestNotes_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	note := models.Note{ID: "n-1", Title: "First", Content: "# Hello"}
	mockAPI.EXPECT().Token().Return("tok")
	mockAPI.EXPECT().GetNote(ctx, "n-1").Return(note, nil)

	got, err := svcs.Notes.Get(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, note, got)
}

func TestNotes_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	draft := models.NoteDraft{Title: "New note", Content: "# Body"}
	mockAPI.EXPECT().Token().Return("tok")
	mockAPI.EXPECT().CreateNote(ctx, draft).Return(models.Note{ID: "n-new", Title: "New note"}, nil)

	got, err := svcs.Notes.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "n-new", got.ID)
}

func TestNotes_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	mockAPI.EXPECT().Token().Return("tok")
	mockAPI.EXPECT().UpdateNote(ctx, "n-gone", gomock.Any()).Return(adapter.ErrNotFound)

	err := svcs.Notes.Update(ctx, "n-gone", models.NoteDraft{Content: "x"})
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestNotes_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	mockAPI.EXPECT().Token().Return("tok")
	mockAPI.EXPECT().DeleteNote(ctx, "n-1").Return(nil)

	assert.NoError(t, svcs.Notes.Delete(ctx, "n-1"))
}

// ── Teams ────────────────────────────────────────────────────────────────────

func TestTeams_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, _ := newTestServices(t, ctrl)
	ctx := context.Background()

	teams := []models.Team{{ID: "t-1", Name: "Platform", Path: "platform"}}
	mockAPI.EXPECT().Token().Return("tok")
	mockAPI.EXPECT().ListTeams(ctx).Return(teams, nil)

	got, err := svcs.Teams.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, teams, got)
}

func TestTeams_ListNotes_RequiresCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs, mockAPI, mockStore := newTestServices(t, ctrl)

	mockAPI.EXPECT().Token().Return("")
	mockStore.EXPECT().Load("default").Return(models.Credential{}, credential.ErrNoCredential)

	_, err := svcs.Teams.ListNotes(context.Background(), "platform")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

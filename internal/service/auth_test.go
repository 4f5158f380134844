package service

import (
	"context"
	"errors"
	"testing"
	"time"

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

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockAPIClient, *mock.MockStore) {
	t.Helper()
	mockAPI := mock.NewMockAPIClient(ctrl)
	mockStore := mock.NewMockStore(ctrl)

	deps := Deps{
		API:   mockAPI,
		Store: mockStore,
		Config: config.ClientConfig{
			API:         config.ClientAPI{BaseURL: "https://api.hackmd.io/v1"},
			Credentials: config.ClientCredentials{Profile: "default"},
		},
		Logger: logger.Nop(),
	}

	svc := newAuthService(deps)
	svc.now = func() time.Time { return testTime }

	return svc, mockAPI, mockStore
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuth_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{ID: "u-1", Name: "Alice", Email: "alice@example.com"}

	gomock.InOrder(
		mockAPI.EXPECT().VerifyToken(ctx, "tok-valid").Return(user, nil),
		mockStore.EXPECT().Save("default", models.Credential{
			Token:      "tok-valid",
			BaseURL:    "https://api.hackmd.io/v1",
			VerifiedAt: testTime,
			User:       &user,
		}).Return(nil),
		mockAPI.EXPECT().SetToken("tok-valid"),
	)

	status, err := svc.Login(ctx, "tok-valid", "")
	require.NoError(t, err)
	assert.Equal(t, models.StateAuthenticated, status.State)
	assert.Equal(t, "default", status.Profile)
	assert.Equal(t, &user, status.User)
	assert.Equal(t, testTime, status.VerifiedAt)
}

func TestAuth_Login_RejectedTokenNotPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// Save must never be called: a rejected token cannot clobber a
	// previously working credential
	mockAPI.EXPECT().VerifyToken(ctx, "tok-bad").Return(models.User{}, adapter.ErrUnauthorized)

	_, err := svc.Login(ctx, "tok-bad", "")
	assert.ErrorIs(t, err, ErrLoginRejected)
}

func TestAuth_Login_TransientFailureNotPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAPI.EXPECT().VerifyToken(ctx, "tok").Return(models.User{}, adapter.ErrTransient)

	_, err := svc.Login(ctx, "tok", "")
	assert.ErrorIs(t, err, adapter.ErrTransient)
	assert.NotErrorIs(t, err, ErrLoginRejected)
}

func TestAuth_Login_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAPI.EXPECT().VerifyToken(ctx, "tok").Return(models.User{ID: "u-1"}, nil)
	mockStore.EXPECT().Save("default", gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Login(ctx, "tok", "")
	assert.ErrorIs(t, err, ErrLocalIO)
}

func TestAuth_Login_NamedProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAPI.EXPECT().VerifyToken(ctx, "tok-work").Return(models.User{ID: "u-2"}, nil)
	mockStore.EXPECT().Save("work", gomock.Any()).Return(nil)
	mockAPI.EXPECT().SetToken("tok-work")

	status, err := svc.Login(ctx, "tok-work", "work")
	require.NoError(t, err)
	assert.Equal(t, "work", status.Profile)
}

// ── Status ───────────────────────────────────────────────────────────────────

func TestAuth_Status_NoCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockStore := newTestAuthSvc(t, ctrl)

	mockStore.EXPECT().Load("default").Return(models.Credential{}, credential.ErrNoCredential)

	status, err := svc.Status(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.StateUnauthenticated, status.State)
	assert.Nil(t, status.User)
}

func TestAuth_Status_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stale := testTime.Add(-24 * time.Hour)
	user := models.User{ID: "u-1", Name: "Alice"}
	cred := models.Credential{Token: "tok-valid", VerifiedAt: stale, User: &user}

	mockStore.EXPECT().Load("default").Return(cred, nil)
	mockAPI.EXPECT().VerifyToken(ctx, "tok-valid").Return(user, nil)
	// successful check refreshes the verification timestamp
	refreshed := cred
	refreshed.VerifiedAt = testTime
	mockStore.EXPECT().Save("default", refreshed).Return(nil)

	status, err := svc.Status(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.StateAuthenticated, status.State)
	assert.Equal(t, testTime, status.VerifiedAt)
	assert.Equal(t, &user, status.User)
}

func TestAuth_Status_RevokedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	cred := models.Credential{Token: "tok-revoked", User: &models.User{ID: "u-1"}}
	mockStore.EXPECT().Load("default").Return(cred, nil)
	mockAPI.EXPECT().VerifyToken(ctx, "tok-revoked").Return(models.User{}, adapter.ErrUnauthorized)

	status, err := svc.Status(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.StateUnauthenticated, status.State)
}

func TestAuth_Status_UnreachableDegradesToUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{ID: "u-1", Name: "Alice"}
	cred := models.Credential{Token: "tok", VerifiedAt: testTime, User: &user}
	mockStore.EXPECT().Load("default").Return(cred, nil)
	mockAPI.EXPECT().VerifyToken(ctx, "tok").Return(models.User{}, adapter.ErrTransient)

	status, err := svc.Status(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.StateUnknown, status.State)
	// cached identity still reported
	assert.Equal(t, &user, status.User)
	assert.Equal(t, testTime, status.VerifiedAt)
}

func TestAuth_Status_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockStore.EXPECT().Load("default").Return(models.Credential{Token: "tok"}, nil)
	mockAPI.EXPECT().VerifyToken(ctx, "tok").Return(models.User{}, context.Canceled)

	_, err := svc.Status(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuth_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAPI, mockStore := newTestAuthSvc(t, ctrl)

	mockStore.EXPECT().Delete("default").Return(nil)
	mockAPI.EXPECT().SetToken("")

	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuth_Logout_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockStore := newTestAuthSvc(t, ctrl)

	mockStore.EXPECT().Delete("default").Return(errors.New("permission denied"))

	err := svc.Logout(context.Background(), "")
	assert.ErrorIs(t, err, ErrLocalIO)
}

package credential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

func newTestStore(t *testing.T) (*fileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	s, err := NewFileStore(config.ClientCredentials{FilePath: path}, logger.Nop())
	require.NoError(t, err)
	return s.(*fileStore), path
}

func testCredential(token string) models.Credential {
	return models.Credential{
		Token:      token,
		BaseURL:    "https://api.hackmd.io/v1",
		VerifiedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:       &models.User{ID: "u-1", Name: "Alice"},
	}
}

// ── Save / Load ──────────────────────────────────────────────────────────────

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	want := testCredential("tok-1")
	require.NoError(t, s.Save("default", want))

	got, err := s.Load("default")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_EmptyProfileUsesActive(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Save("work", testCredential("tok-work")))

	got, err := s.Load("")
	require.NoError(t, err)
	assert.Equal(t, "tok-work", got.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load("default")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestLoad_MissingProfile(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Save("default", testCredential("tok")))

	_, err := s.Load("work")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSave_PreservesOtherProfiles(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Save("default", testCredential("tok-default")))
	require.NoError(t, s.Save("work", testCredential("tok-work")))

	gotDefault, err := s.Load("default")
	require.NoError(t, err)
	assert.Equal(t, "tok-default", gotDefault.Token)

	// the latest login marks its profile active
	gotActive, err := s.Load("")
	require.NoError(t, err)
	assert.Equal(t, "tok-work", gotActive.Token)
}

func TestSave_FilePermissionsOwnerOnly(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Save("default", testCredential("secret")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSave_LeavesNoTempFilesBehind(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Save("default", testCredential("tok")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".config-", "temp file left behind: %s", e.Name())
	}
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestDelete_RemovesCredential(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Save("default", testCredential("tok")))
	require.NoError(t, s.Delete("default"))

	_, err := s.Load("default")
	assert.ErrorIs(t, err, ErrNoCredential)

	// the last profile went away with the file itself
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDelete_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Delete("default"))
	require.NoError(t, s.Delete("default"))
}

func TestDelete_OnlyNamedProfile(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Save("default", testCredential("tok-default")))
	require.NoError(t, s.Save("work", testCredential("tok-work")))

	require.NoError(t, s.Delete("work"))

	_, err := s.Load("work")
	assert.ErrorIs(t, err, ErrNoCredential)

	got, err := s.Load("default")
	require.NoError(t, err)
	assert.Equal(t, "tok-default", got.Token)
}

func TestDelete_EmptyProfileUsesActive(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Save("work", testCredential("tok-work")))
	require.NoError(t, s.Delete(""))

	_, err := s.Load("work")
	assert.ErrorIs(t, err, ErrNoCredential)
}

// ── Concurrency ──────────────────────────────────────────────────────────────

// TestConcurrentWriters verifies that interleaved Save and Delete calls from
// multiple goroutines (each with its own flock handle, as separate processes
// would have) never leave the credential file truncated or unparsable.
func TestConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	newStore := func() Store {
		s, err := NewFileStore(config.ClientCredentials{FilePath: path}, logger.Nop())
		require.NoError(t, err)
		return s
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s := newStore()
			for range 10 {
				if n%2 == 0 {
					_ = s.Save("default", testCredential("tok"))
				} else {
					_ = s.Delete("default")
				}
			}
		}(i)
	}
	wg.Wait()

	// whatever the final state, the file must be absent or valid JSON
	data, err := os.ReadFile(path)
	if err != nil {
		assert.ErrorIs(t, err, os.ErrNotExist)
		return
	}
	var file credentialFile
	assert.NoError(t, json.Unmarshal(data, &file))
}

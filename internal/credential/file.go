package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

// credentialFile is the on-disk layout: named profiles plus the marker of
// the one commands operate on by default.
type credentialFile struct {
	ActiveProfile string                       `json:"active_profile,omitempty"`
	Profiles      map[string]models.Credential `json:"profiles"`
}

type fileStore struct {
	path string
	lock *flock.Flock

	logger *logger.Logger
}

// NewFileStore constructs a file-backed [Store] at cfg.FilePath, defaulting
// to <user config dir>/hackmd/config.json when the path is empty.
func NewFileStore(cfg config.ClientCredentials, log *logger.Logger) (Store, error) {
	path := cfg.FilePath
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		path = filepath.Join(configDir, "hackmd", "config.json")
	}

	return &fileStore{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: log,
	}, nil
}

// Load implements [Store].
func (s *fileStore) Load(profile string) (models.Credential, error) {
	file, err := s.read()
	if err != nil {
		return models.Credential{}, err
	}

	if profile == "" {
		profile = file.ActiveProfile
	}

	cred, ok := file.Profiles[profile]
	if !ok || cred.Token == "" {
		return models.Credential{}, fmt.Errorf("profile %q: %w", profile, ErrNoCredential)
	}

	return cred, nil
}

// Save implements [Store]. The profile map is rewritten under an exclusive
// cross-process lock so two concurrent logins cannot interleave their
// read-modify-write cycles.
func (s *fileStore) Save(profile string, cred models.Credential) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock credential file: %w", err)
	}
	defer s.lock.Unlock()

	file, err := s.read()
	if err != nil && !errors.Is(err, ErrNoCredential) {
		return err
	}
	if file.Profiles == nil {
		file.Profiles = make(map[string]models.Credential, 1)
	}

	file.Profiles[profile] = cred
	file.ActiveProfile = profile

	return s.write(file)
}

// Delete implements [Store].
func (s *fileStore) Delete(profile string) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock credential file: %w", err)
	}
	defer s.lock.Unlock()

	file, err := s.read()
	if errors.Is(err, ErrNoCredential) {
		return nil
	}
	if err != nil {
		return err
	}

	if profile == "" {
		profile = file.ActiveProfile
	}
	if _, ok := file.Profiles[profile]; !ok {
		return nil
	}

	delete(file.Profiles, profile)
	if file.ActiveProfile == profile {
		file.ActiveProfile = ""
	}

	if len(file.Profiles) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove credential file: %w", err)
		}
		return nil
	}

	return s.write(file)
}

func (s *fileStore) read() (credentialFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return credentialFile{}, ErrNoCredential
	}
	if err != nil {
		return credentialFile{}, fmt.Errorf("read credential file: %w", err)
	}

	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return credentialFile{}, fmt.Errorf("decode credential file: %w", err)
	}

	return file, nil
}

// write persists the file via temp-then-rename so an interrupt between the
// two steps leaves the previous state intact.
func (s *fileStore) write(file credentialFile) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp credential file: %w", err)
	}
	// os.CreateTemp opens with 0600 already; set explicitly in case the
	// process umask implementation differs
	if err = tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp credential file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp credential file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace credential file: %w", err)
	}

	return nil
}

// Package template manages the local markdown template library: a flat
// directory of .md files with {{variable}} placeholders, seeded with a set
// of built-in templates and rendered with date/time variables filled in.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hackmd-tools/hackmd-cli/internal/logger"
)

// ErrNotFound means the requested template is not installed.
var ErrNotFound = errors.New("template not found")

// Store is a directory-backed template library.
type Store struct {
	dir string
	now func() time.Time

	logger *logger.Logger
}

// NewStore constructs a Store rooted at dir, defaulting to
// <home>/.hackmd/templates when dir is empty.
func NewStore(dir string, log *logger.Logger) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".hackmd", "templates")
	}

	return &Store{
		dir:    dir,
		now:    time.Now,
		logger: log,
	}, nil
}

// Init seeds the template directory with the built-in templates, skipping
// any that already exist so user edits survive re-runs. Returns the names
// it created, sorted.
func (s *Store) Init() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create template dir: %w", err)
	}

	var created []string
	for name, content := range defaultTemplates {
		path := s.pathFor(name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat template %s: %w", name, err)
		}

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("write template %s: %w", name, err)
		}
		created = append(created, name)
	}

	sort.Strings(created)
	s.logger.Info().Int("created", len(created)).Msg("template directory initialised")
	return created, nil
}

// List returns the names of the installed templates, sorted. A missing
// template directory is an empty library, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}

	sort.Strings(names)
	return names, nil
}

// Get returns the raw template body.
func (s *Store) Get(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.pathFor(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}

	return string(data), nil
}

// Render substitutes {{variable}} placeholders in the named template.
// Caller-provided vars take precedence over the built-in date/time set;
// placeholders with no value are left in place.
func (s *Store) Render(name string, vars map[string]string) (string, error) {
	content, err := s.Get(name)
	if err != nil {
		return "", err
	}

	now := s.now()
	_, week := now.ISOWeek()
	merged := map[string]string{
		"date":        now.Format("2006-01-02"),
		"time":        now.Format("15:04"),
		"month":       now.Format("January"),
		"year":        fmt.Sprintf("%d", now.Year()),
		"week_number": fmt.Sprintf("%d", week),
	}
	for k, v := range vars {
		merged[k] = v
	}

	for key, value := range merged {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}

	return content, nil
}

// Save creates or overwrites a template.
func (s *Store) Save(name, content string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create template dir: %w", err)
	}
	if err := os.WriteFile(s.pathFor(name), []byte(content), 0644); err != nil {
		return fmt.Errorf("write template %s: %w", name, err)
	}

	s.logger.Info().Str("template", name).Msg("template saved")
	return nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.dir, name+".md")
}

// validateName keeps template names inside the library directory.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid template name %q", name)
	}
	return nil
}

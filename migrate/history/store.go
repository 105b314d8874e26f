package history

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Store persists migration scripts in a directory. Migrations are
// immutable once written: the store refuses to overwrite an existing
// file, which also guards against two writers racing on the same version
// number.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a store over the given filesystem and directory.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// List returns the versioned migration filenames present in the
// directory, sorted by version. Non-migration files are ignored. A
// missing directory is an empty history, not an error.
func (s *Store) List() ([]string, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check migrations directory: %w", err)
	}
	if !exists {
		return nil, nil
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := ParseVersion(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		vi, _ := ParseVersion(names[i])
		vj, _ := ParseVersion(names[j])
		return vi < vj
	})
	return names, nil
}

// Write persists a migration script under its filename, creating the
// directory if needed. Writing over an existing migration is an error:
// history is append-only.
func (s *Store) Write(fileName, sql string) error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	path := filepath.Join(s.dir, fileName)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check migration file: %w", err)
	}
	if exists {
		return fmt.Errorf("migration %s already exists: history is append-only", fileName)
	}

	if err := afero.WriteFile(s.fs, path, []byte(sql), 0644); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}
	return nil
}

// Read returns the SQL content of a migration file.
func (s *Store) Read(fileName string) (string, error) {
	content, err := afero.ReadFile(s.fs, filepath.Join(s.dir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to read migration %s: %w", fileName, err)
	}
	return string(content), nil
}

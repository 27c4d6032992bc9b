package adapter

import (
	"fmt"
	"os"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// SolutionStore reads and writes the solution file text. Parsing and
// emission of the format live in internal/sln; the store only moves bytes.
type SolutionStore interface {
	Read(path m.Path) (string, error)
	Write(path m.Path, text string) error
	// Backup copies path to a sibling ".bak" file and returns the backup
	// path. A failed backup must block the rewrite, so errors propagate.
	Backup(path m.Path) (m.Path, error)
	Exists(path m.Path) bool
}

// FileSolutionStore is the os-backed SolutionStore.
type FileSolutionStore struct {
	fs RepoFS
}

// NewFileSolutionStore constructs a FileSolutionStore on top of a RepoFS.
func NewFileSolutionStore(fs RepoFS) *FileSolutionStore {
	return &FileSolutionStore{fs: fs}
}

// Read returns the solution file contents as a string.
func (s *FileSolutionStore) Read(path m.Path) (string, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read solution %s: %w", path, err)
	}

	return string(data), nil
}

// Write replaces the solution file contents.
func (s *FileSolutionStore) Write(path m.Path, text string) error {
	if err := s.fs.WriteFile(path, []byte(text), os.FileMode(0o644)); err != nil {
		return fmt.Errorf("write solution %s: %w", path, err)
	}

	return nil
}

// Backup copies the solution to "<path>.bak" before a destructive rewrite.
func (s *FileSolutionStore) Backup(path m.Path) (m.Path, error) {
	backup := path + ".bak"
	if err := s.fs.CopyFile(path, backup); err != nil {
		return "", fmt.Errorf("backup solution to %s: %w", backup, err)
	}

	return backup, nil
}

// Exists reports whether the solution file is present.
func (s *FileSolutionStore) Exists(path m.Path) bool {
	return s.fs.FileExists(path)
}

// Package adapter contains infrastructure adapters for the slnforge CLI.
package adapter

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// RepoFS abstracts filesystem operations the domain layer relies on when
// scanning submodule trees. It hides direct `os` access so the pipeline
// logic can be tested against in-memory fakes.
type RepoFS interface {
	// WalkDir traverses root depth-first. The callback may return
	// fs.SkipDir on a directory to prevent descending into it.
	WalkDir(root m.Path, fn fs.WalkDirFunc) error

	// ReadDir lists the immediate entries of a directory.
	ReadDir(path m.Path) ([]fs.DirEntry, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// CopyFile copies src to dst, preserving the source mode.
	CopyFile(src, dst m.Path) error

	// DirExists reports whether path exists and is a directory.
	DirExists(path m.Path) bool

	// FileExists reports whether path exists and is a regular file.
	FileExists(path m.Path) bool

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalRepoFS is the os-backed implementation of RepoFS.
type LocalRepoFS struct{}

// NewLocalRepoFS constructs a LocalRepoFS ready to be wired into the workflow.
func NewLocalRepoFS() *LocalRepoFS {
	return &LocalRepoFS{}
}

// WalkDir traverses root depth-first using filepath.WalkDir.
func (a *LocalRepoFS) WalkDir(root m.Path, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(string(root), fn)
}

// ReadDir lists the immediate entries of a directory.
func (a *LocalRepoFS) ReadDir(path m.Path) ([]fs.DirEntry, error) {
	return os.ReadDir(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalRepoFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalRepoFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// CopyFile copies src to dst, preserving the source file mode.
func (a *LocalRepoFS) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	// #nosec G304 - src is an internal repository path, not user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	// #nosec G304 - dst is an internal destination path, not user input
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode())
}

// DirExists reports whether path exists and is a directory.
func (a *LocalRepoFS) DirExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func (a *LocalRepoFS) FileExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.Mode().IsRegular()
}

// RelPath returns the relative path from base to target.
func (a *LocalRepoFS) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalRepoFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

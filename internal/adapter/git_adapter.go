package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"time"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// GitRunner abstracts the per-submodule remote update step. A failing
// submodule must only warn; the caller decides to continue.
type GitRunner interface {
	// UpdateSubmodule fetches, checks out the given branch and pulls inside
	// the submodule directory. Returns the combined git output and any error.
	UpdateSubmodule(ctx context.Context, repoRoot m.Path, sub m.Path, branch string) (string, error)
}

// LocalGitRunner shells out to the git binary via os/exec.
type LocalGitRunner struct {
	timeout time.Duration
}

// NewLocalGitRunner constructs a LocalGitRunner with a default 2m timeout
// per submodule.
func NewLocalGitRunner() *LocalGitRunner {
	return &LocalGitRunner{
		timeout: 2 * time.Minute,
	}
}

// UpdateSubmodule runs `git fetch`, `git checkout <branch>` and `git pull
// --ff-only` sequentially inside the submodule directory. It stops at the
// first failing step and returns everything git printed so far.
func (g *LocalGitRunner) UpdateSubmodule(ctx context.Context, repoRoot m.Path, sub m.Path, branch string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	workDir := filepath.Join(string(repoRoot), string(sub))

	steps := [][]string{
		{"fetch", "--prune"},
		{"checkout", branch},
		{"pull", "--ff-only"},
	}

	var combined bytes.Buffer

	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = workDir
		cmd.Stdout = &combined
		cmd.Stderr = &combined

		if err := cmd.Run(); err != nil {
			return combined.String(), err
		}
	}

	return combined.String(), nil
}

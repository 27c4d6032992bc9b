package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"slnforge.dev/pkg/slnforge/internal/adapter"
	"slnforge.dev/pkg/slnforge/internal/controller"
	m "slnforge.dev/pkg/slnforge/internal/model"
	"slnforge.dev/pkg/slnforge/internal/sln"
)

// PreviewArgs drives the preview command: stages 1-3 plus rendering.
type PreviewArgs struct {
	RepoRoot m.Path
	Manifest m.Path
	// Format selects the rendering: "tree" (default) or "yaml".
	Format string
}

// SyncArgs drives the sync command.
type SyncArgs struct {
	RepoRoot m.Path
	Manifest m.Path
	Solution m.Path
	// DryRun prints the computed structure (and pending diff, if any)
	// without writing.
	DryRun bool
	// Update runs the per-submodule git update before scanning.
	Update bool
	// Branch is the branch checked out during updates.
	Branch string
	// Rebuild forces a full rewrite instead of an incremental patch.
	Rebuild bool
}

// Workflow runs the solution pipeline: list submodules, scan their trees,
// build the folder hierarchy, then emit or patch the solution file.
type Workflow interface {
	Preview(ctx context.Context, args PreviewArgs) error
	Sync(ctx context.Context, args SyncArgs) error
}

type workflow struct {
	fs      adapter.RepoFS
	store   adapter.SolutionStore
	git     adapter.GitRunner
	scanner *Scanner
	ui      controller.UI
}

// NewWorkflow constructs a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.RepoFS,
	store adapter.SolutionStore,
	git adapter.GitRunner,
	scanner *Scanner,
	ui controller.UI,
) Workflow {
	return &workflow{
		fs:      fsAdapter,
		store:   store,
		git:     git,
		scanner: scanner,
		ui:      ui,
	}
}

// discovery is the shared output of stages 1-2.
type discovery struct {
	submodules []m.Path
	results    []ScanResult
}

// Preview computes the hierarchy and renders it without touching the
// solution file.
func (w *workflow) Preview(_ context.Context, args PreviewArgs) error {
	subs, err := w.listSubmodules(args.RepoRoot, args.Manifest)
	if err != nil {
		return err
	}

	disc, err := w.scanAll(args.RepoRoot, subs)
	if err != nil {
		return err
	}

	h := BuildHierarchy(disc.results, nil)

	if args.Format == "yaml" {
		return w.ui.DisplayYAML(h)
	}

	if err := w.ui.DisplayHierarchy(h); err != nil {
		return err
	}

	return w.ui.DisplaySummary(h, len(disc.submodules))
}

// Sync regenerates the solution file: an incremental patch when the file
// exists, a full rewrite when it is missing or Rebuild is set.
func (w *workflow) Sync(ctx context.Context, args SyncArgs) error {
	subs, err := w.listSubmodules(args.RepoRoot, args.Manifest)
	if err != nil {
		return err
	}

	if args.Update {
		w.updateSubmodules(ctx, args.RepoRoot, subs, args.Branch)
	}

	disc, err := w.scanAll(args.RepoRoot, subs)
	if err != nil {
		return err
	}

	solutionPath := w.fs.JoinPath(string(args.RepoRoot), string(args.Solution))

	if !args.Rebuild && w.store.Exists(solutionPath) {
		return w.syncIncremental(disc, solutionPath, args)
	}

	return w.syncRewrite(disc, solutionPath, args)
}

// listSubmodules reads and parses the manifest. A missing manifest or an
// empty declaration list is fatal.
func (w *workflow) listSubmodules(root, manifest m.Path) ([]m.Path, error) {
	manifestPath := w.fs.JoinPath(string(root), string(manifest))

	content, err := w.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", manifestPath, err)
	}

	submodules := ListSubmodules(string(content))
	if len(submodules) == 0 {
		return nil, fmt.Errorf("no submodule paths declared in %s", manifestPath)
	}

	w.ui.Statusf("found %d submodules in %s", len(submodules), manifest)

	return submodules, nil
}

// scanAll scans every submodule. Individual submodule problems only warn;
// finding no projects at all is fatal.
func (w *workflow) scanAll(root m.Path, submodules []m.Path) (*discovery, error) {
	disc := &discovery{submodules: submodules}

	projectCount := 0

	for _, sub := range submodules {
		if !w.fs.DirExists(w.fs.JoinPath(string(root), string(sub))) {
			w.ui.Warnf("submodule directory %s is missing", sub)
		}

		result, err := w.scanner.ScanSubmodule(root, sub)
		if err != nil {
			return nil, err
		}

		projectCount += len(result.Projects)
		disc.results = append(disc.results, result)
	}

	if projectCount == 0 {
		return nil, fmt.Errorf("no project files found under any submodule")
	}

	w.ui.Statusf("discovered %d projects", projectCount)

	return disc, nil
}

// updateSubmodules runs the remote update sequentially. A failure on one
// submodule warns and moves on to the next; it never aborts the run.
func (w *workflow) updateSubmodules(ctx context.Context, root m.Path, subs []m.Path, branch string) {
	for _, sub := range subs {
		if !w.fs.DirExists(w.fs.JoinPath(string(root), string(sub))) {
			continue
		}

		w.ui.Statusf("updating %s", sub)

		output, err := w.git.UpdateSubmodule(ctx, root, sub, branch)
		if err != nil {
			slog.Warn("submodule update failed", "path", sub, "error", err, "output", output)
			w.ui.Warnf("update of %s failed: %v", sub, err)
		}
	}
}

func (w *workflow) syncIncremental(disc *discovery, solutionPath m.Path, args SyncArgs) error {
	original, err := w.store.Read(solutionPath)
	if err != nil {
		return err
	}

	parsed, err := sln.Parse(original)
	if err != nil {
		return fmt.Errorf("parse solution %s: %w", solutionPath, err)
	}

	h := BuildHierarchy(disc.results, parsed.State())

	patch, err := sln.Apply(parsed, h)
	if err != nil {
		return fmt.Errorf("patch solution %s: %w", solutionPath, err)
	}

	if args.DryRun {
		if err := w.ui.DisplayHierarchy(h); err != nil {
			return err
		}

		if err := w.ui.DisplayDiff(unifiedDiff(string(args.Solution), original, patch.Text)); err != nil {
			return err
		}

		return w.ui.DisplaySummary(h, len(disc.submodules))
	}

	if !patch.Changed() {
		w.ui.Statusf("%s is up to date", args.Solution)
		return nil
	}

	if err := w.store.Write(solutionPath, patch.Text); err != nil {
		return err
	}

	w.ui.Statusf("patched %s: +%d folders, +%d projects",
		args.Solution, len(patch.AddedFolders), len(patch.AddedProjects))

	return w.ui.DisplaySummary(h, len(disc.submodules))
}

func (w *workflow) syncRewrite(disc *discovery, solutionPath m.Path, args SyncArgs) error {
	h := BuildHierarchy(disc.results, nil)

	name := filepath.Base(string(args.Solution))
	text := sln.Write(h, name)

	if args.DryRun {
		if err := w.ui.DisplayHierarchy(h); err != nil {
			return err
		}

		return w.ui.DisplaySummary(h, len(disc.submodules))
	}

	if w.store.Exists(solutionPath) {
		backup, err := w.store.Backup(solutionPath)
		if err != nil {
			// A skipped backup would make the rewrite silently destructive.
			return err
		}

		w.ui.Statusf("backed up existing solution to %s", backup)
	}

	if err := w.store.Write(solutionPath, text); err != nil {
		return err
	}

	w.ui.Statusf("wrote %s: %d folders, %d projects, %d files",
		args.Solution, len(h.Folders), len(h.Projects), h.ItemCount())

	return w.ui.DisplaySummary(h, len(disc.submodules))
}

// unifiedDiff renders the pending change between the current file and the
// patched text. Empty string means no change.
func unifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (proposed)",
		Context:  3,
	})
	if err != nil {
		return ""
	}

	return diff
}

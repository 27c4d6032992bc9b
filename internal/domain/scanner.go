package domain

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"slnforge.dev/pkg/slnforge/internal/adapter"
	m "slnforge.dev/pkg/slnforge/internal/model"
)

// Directory names that are never descended into. Build artifacts, dependency
// caches and IDE/VCS metadata contain descriptor copies that must not end up
// in the solution.
var excludedDirs = map[string]struct{}{
	".git":         {},
	".svn":         {},
	".hg":          {},
	".vs":          {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"packages":     {},
	"bin":          {},
	"obj":          {},
	"testresults":  {},
	"artifacts":    {},
}

// projectKinds maps recognized descriptor extensions to their kind.
var projectKinds = map[string]m.ProjectKind{
	".csproj": m.KindCSharp,
	".fsproj": m.KindFSharp,
	".vbproj": m.KindVisualBasic,
}

// ProjectAssignment is one discovered descriptor file with its target folder
// path, before hierarchy nodes exist.
type ProjectAssignment struct {
	Name       string
	RelPath    string // backslash path relative to the solution root
	Kind       m.ProjectKind
	FolderPath string
}

// ItemAssignment is one auxiliary file with its target folder path.
type ItemAssignment struct {
	RelPath    string
	FolderPath string
}

// ScanResult is everything one submodule contributes to the solution.
type ScanResult struct {
	Projects []ProjectAssignment
	Items    []ItemAssignment
}

// ScanOptions tunes scanning and classification.
type ScanOptions struct {
	Naming NamingOptions
	// ExtraExcludeDirs are merged (case-insensitively) with the built-in
	// exclusion set.
	ExtraExcludeDirs []string
}

// Scanner walks submodule trees and classifies what it finds.
type Scanner struct {
	fs      adapter.RepoFS
	opts    ScanOptions
	exclude map[string]struct{}
}

// NewScanner constructs a Scanner backed by the provided filesystem adapter.
func NewScanner(fsAdapter adapter.RepoFS, opts ScanOptions) *Scanner {
	exclude := make(map[string]struct{}, len(excludedDirs)+len(opts.ExtraExcludeDirs))
	for name := range excludedDirs {
		exclude[name] = struct{}{}
	}

	for _, name := range opts.ExtraExcludeDirs {
		exclude[strings.ToLower(name)] = struct{}{}
	}

	return &Scanner{fs: fsAdapter, opts: opts, exclude: exclude}
}

// ScanSubmodule scans one submodule directory beneath root. A submodule that
// is declared but absent on disk yields an empty result and a warning, not
// an error: one broken submodule must not abort the whole run.
func (s *Scanner) ScanSubmodule(root, sub m.Path) (ScanResult, error) {
	var result ScanResult

	subDir := s.fs.JoinPath(string(root), string(sub))
	if !s.fs.DirExists(subDir) {
		slog.Warn("submodule directory missing, skipping", "path", sub)
		return result, nil
	}

	class := Classify(sub, s.opts.Naming)

	projects, err := s.collectProjects(subDir, sub, class.FolderPath)
	if err != nil {
		return result, fmt.Errorf("scan %s: %w", sub, err)
	}

	result.Projects = projects

	items, err := s.collectItems(subDir, sub, class.FolderPath)
	if err != nil {
		return result, fmt.Errorf("scan %s: %w", sub, err)
	}

	result.Items = items

	if len(result.Projects) == 0 {
		slog.Warn("submodule contains no project files", "path", sub)
	}

	return result, nil
}

// collectProjects walks the whole submodule tree for descriptor files.
// A descriptor directly in the submodule root belongs to the submodule
// folder; anything deeper belongs to the folder of its first-level
// subdirectory.
func (s *Scanner) collectProjects(subDir, sub m.Path, baseFolder string) ([]ProjectAssignment, error) {
	var projects []ProjectAssignment

	err := s.fs.WalkDir(subDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if s.isExcluded(d.Name()) && path != string(subDir) {
				return fs.SkipDir
			}

			return nil
		}

		kind, ok := projectKinds[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		rel, relErr := s.fs.RelPath(subDir, m.Path(path))
		if relErr != nil {
			return relErr
		}

		projects = append(projects, ProjectAssignment{
			Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			RelPath:    solutionRelPath(sub, string(rel)),
			Kind:       kind,
			FolderPath: folderForEntry(baseFolder, string(rel)),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// collectItems gathers auxiliary files directly in the submodule root and
// directly in each first-level subdirectory. The allow-list is deliberately
// not applied recursively so the same README does not reappear at every
// level.
func (s *Scanner) collectItems(subDir, sub m.Path, baseFolder string) ([]ItemAssignment, error) {
	var items []ItemAssignment

	entries, err := s.fs.ReadDir(subDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			if s.isExcluded(entry.Name()) {
				continue
			}

			subItems, err := s.itemsInDir(
				s.fs.JoinPath(string(subDir), entry.Name()),
				sub,
				entry.Name(),
				baseFolder+"\\"+entry.Name(),
			)
			if err != nil {
				return nil, err
			}

			items = append(items, subItems...)

			continue
		}

		if IsSolutionItem(entry.Name()) {
			items = append(items, ItemAssignment{
				RelPath:    solutionRelPath(sub, entry.Name()),
				FolderPath: baseFolder,
			})
		}
	}

	return items, nil
}

func (s *Scanner) itemsInDir(dir, sub m.Path, subdirName, folderPath string) ([]ItemAssignment, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var items []ItemAssignment

	for _, entry := range entries {
		if entry.IsDir() || !IsSolutionItem(entry.Name()) {
			continue
		}

		items = append(items, ItemAssignment{
			RelPath:    solutionRelPath(sub, subdirName+"/"+entry.Name()),
			FolderPath: folderPath,
		})
	}

	return items, nil
}

func (s *Scanner) isExcluded(name string) bool {
	_, ok := s.exclude[strings.ToLower(name)]
	return ok
}

// IsSolutionItem reports whether a file name matches the auxiliary-file
// allow-list: docs, ignore/attributes files, build-property files, editor
// and package-source configuration, license files.
func IsSolutionItem(name string) bool {
	lower := strings.ToLower(name)

	switch filepath.Ext(lower) {
	case ".md", ".txt":
		return true
	}

	switch lower {
	case ".gitignore", ".gitattributes", ".editorconfig", "global.json", "nuget.config":
		return true
	}

	if strings.HasPrefix(lower, "directory.") &&
		(strings.HasSuffix(lower, ".props") || strings.HasSuffix(lower, ".targets")) {
		return true
	}

	return strings.HasPrefix(lower, "license")
}

// folderForEntry picks the folder path for a file found at rel (relative to
// the submodule root, native separators).
func folderForEntry(baseFolder, rel string) string {
	normalized := strings.ReplaceAll(rel, "\\", "/")

	first, _, found := strings.Cut(normalized, "/")
	if !found {
		return baseFolder
	}

	return baseFolder + "\\" + first
}

// solutionRelPath joins a submodule path and a submodule-relative file path
// into a solution-root-relative path with backslashes, the separator the
// solution format uses.
func solutionRelPath(sub m.Path, rel string) string {
	joined := strings.ReplaceAll(string(sub), "\\", "/") + "/" + strings.ReplaceAll(rel, "\\", "/")
	return strings.ReplaceAll(joined, "/", "\\")
}

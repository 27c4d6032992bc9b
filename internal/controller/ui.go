// Package controller provides output adapters for displaying the computed
// solution structure.
package controller

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// UI is the interface the workflow reports through. Implementations decide
// how the hierarchy preview, summary table and diff are rendered.
type UI interface {
	// Statusf prints one human-readable status line for a pipeline stage.
	Statusf(format string, args ...any)
	// Warnf prints a non-fatal warning.
	Warnf(format string, args ...any)
	// DisplayHierarchy renders the category → folder → subfolder →
	// project/file tree.
	DisplayHierarchy(h *m.Hierarchy) error
	// DisplayYAML renders the hierarchy as a YAML document.
	DisplayYAML(h *m.Hierarchy) error
	// DisplaySummary renders the per-category count table.
	DisplaySummary(h *m.Hierarchy, submodules int) error
	// DisplayDiff renders a unified diff of a pending solution change.
	DisplayDiff(diff string) error
}

// NewUI picks the paging TUI on interactive terminals and the plain printer
// everywhere else (pipes, CI).
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

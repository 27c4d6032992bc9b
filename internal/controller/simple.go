package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream. It prints
// everything linearly, which suits pipes and CI logs.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Statusf prints one status line.
func (s *SimpleUI) Statusf(format string, args ...any) {
	s.cmd.Printf(format+"\n", args...)
}

// Warnf prints a warning to the error stream.
func (s *SimpleUI) Warnf(format string, args ...any) {
	s.cmd.PrintErrf("warning: "+format+"\n", args...)
}

// DisplayHierarchy prints the folder tree line by line.
func (s *SimpleUI) DisplayHierarchy(h *m.Hierarchy) error {
	for _, line := range renderTree(h) {
		s.cmd.Println(line)
	}

	return nil
}

// DisplayYAML prints the hierarchy as a YAML document.
func (s *SimpleUI) DisplayYAML(h *m.Hierarchy) error {
	text, err := renderYAML(h)
	if err != nil {
		return err
	}

	s.cmd.Print(text)

	return nil
}

// DisplaySummary prints the per-category count table.
func (s *SimpleUI) DisplaySummary(h *m.Hierarchy, submodules int) error {
	s.cmd.Printf("\n%s", renderSummaryTable(h, submodules))

	return nil
}

// DisplayDiff prints a colored unified diff.
func (s *SimpleUI) DisplayDiff(diff string) error {
	if diff == "" {
		s.cmd.Println("no pending changes")
		return nil
	}

	for _, line := range renderDiff(diff) {
		s.cmd.Println(line)
	}

	return nil
}

// renderSummaryTable builds the per-category table of folder, project and
// file counts.
func renderSummaryTable(h *m.Hierarchy, submodules int) string {
	type counts struct {
		folders  int
		projects int
		items    int
	}

	perCategory := make(map[string]*counts)
	for _, c := range m.Categories {
		perCategory[c.String()] = &counts{}
	}

	for _, f := range h.Folders {
		c, ok := perCategory[rootName(f.FullPath)]
		if !ok {
			continue
		}

		c.folders++
		c.items += len(f.Items)
	}

	for _, p := range h.Projects {
		if p.Folder == nil {
			continue
		}

		if c, ok := perCategory[rootName(p.Folder.FullPath)]; ok {
			c.projects++
		}
	}

	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Category", "Folders", "Projects", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, category := range m.Categories {
		c := perCategory[category.String()]
		if c.folders == 0 && c.projects == 0 {
			continue
		}

		table.Append([]string{
			category.String(),
			fmt.Sprintf("%d", c.folders),
			fmt.Sprintf("%d", c.projects),
			fmt.Sprintf("%d", c.items),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Submodules %d", submodules),
		fmt.Sprintf("%d", len(h.Folders)),
		fmt.Sprintf("%d", len(h.Projects)),
		fmt.Sprintf("%d", h.ItemCount()),
	})

	table.Render()

	return buffer.String()
}

func rootName(fullPath string) string {
	for i := 0; i < len(fullPath); i++ {
		if fullPath[i] == '\\' {
			return fullPath[:i]
		}
	}

	return fullPath
}

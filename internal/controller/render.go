package controller

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

var (
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	folderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	projectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	itemStyle     = lipgloss.NewStyle().Faint(true)
	addStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	removeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

// treeIndex groups the flat hierarchy by parent so it can be walked
// depth-first for display.
type treeIndex struct {
	children map[*m.FolderNode][]*m.FolderNode
	roots    []*m.FolderNode
	projects map[*m.FolderNode][]*m.ProjectEntry
}

func indexHierarchy(h *m.Hierarchy) *treeIndex {
	idx := &treeIndex{
		children: make(map[*m.FolderNode][]*m.FolderNode),
		projects: make(map[*m.FolderNode][]*m.ProjectEntry),
	}

	for _, f := range h.Folders {
		if f.Parent == nil {
			idx.roots = append(idx.roots, f)
			continue
		}

		idx.children[f.Parent] = append(idx.children[f.Parent], f)
	}

	for _, p := range h.Projects {
		idx.projects[p.Folder] = append(idx.projects[p.Folder], p)
	}

	sortFolders(idx.roots)

	for _, list := range idx.children {
		sortFolders(list)
	}

	return idx
}

func sortFolders(list []*m.FolderNode) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}

// renderTree flattens the hierarchy into styled display lines, one per
// folder, project and auxiliary file.
func renderTree(h *m.Hierarchy) []string {
	idx := indexHierarchy(h)

	var lines []string
	for _, root := range idx.roots {
		lines = appendFolderLines(lines, idx, root)
	}

	return lines
}

func appendFolderLines(lines []string, idx *treeIndex, f *m.FolderNode) []string {
	indent := indentFor(f.Depth)

	style := folderStyle
	if f.Depth == 0 {
		style = categoryStyle
	}

	lines = append(lines, indent+style.Render(f.Name))

	entryIndent := indentFor(f.Depth + 1)

	for _, item := range f.Items {
		lines = append(lines, entryIndent+itemStyle.Render(item.RelPath))
	}

	for _, p := range idx.projects[f] {
		lines = append(lines, entryIndent+projectStyle.Render(fmt.Sprintf("%s (%s)", p.Name, p.Kind)))
	}

	for _, child := range idx.children[f] {
		lines = appendFolderLines(lines, idx, child)
	}

	return lines
}

func indentFor(depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	return indent
}

// renderDiff colors unified-diff lines for terminal display.
func renderDiff(diff string) []string {
	var out []string

	for _, line := range splitDisplayLines(diff) {
		switch {
		case len(line) > 0 && line[0] == '+':
			out = append(out, addStyle.Render(line))
		case len(line) > 0 && line[0] == '-':
			out = append(out, removeStyle.Render(line))
		default:
			out = append(out, line)
		}
	}

	return out
}

func splitDisplayLines(text string) []string {
	var lines []string

	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, trimCR(text[start:i]))
			start = i + 1
		}
	}

	if start < len(text) {
		lines = append(lines, trimCR(text[start:]))
	}

	return lines
}

func trimCR(line string) string {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}

	return line
}

type yamlFolder struct {
	Name     string        `yaml:"name"`
	Files    []string      `yaml:"files,omitempty"`
	Projects []string      `yaml:"projects,omitempty"`
	Folders  []*yamlFolder `yaml:"folders,omitempty"`
}

type yamlDocument struct {
	Categories []*yamlFolder `yaml:"categories"`
}

// renderYAML serializes the hierarchy as a nested YAML document.
func renderYAML(h *m.Hierarchy) (string, error) {
	idx := indexHierarchy(h)

	doc := yamlDocument{}
	for _, root := range idx.roots {
		doc.Categories = append(doc.Categories, yamlFolderFor(idx, root))
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal hierarchy: %w", err)
	}

	return string(data), nil
}

func yamlFolderFor(idx *treeIndex, f *m.FolderNode) *yamlFolder {
	yf := &yamlFolder{Name: f.Name}

	for _, item := range f.Items {
		yf.Files = append(yf.Files, item.RelPath)
	}

	for _, p := range idx.projects[f] {
		yf.Projects = append(yf.Projects, p.RelPath)
	}

	for _, child := range idx.children[f] {
		yf.Folders = append(yf.Folders, yamlFolderFor(idx, child))
	}

	return yf
}

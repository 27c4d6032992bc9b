package sln

import (
	"fmt"
	"strings"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// Patch is the outcome of incrementally updating an existing solution.
type Patch struct {
	// Text is the full resulting file content (CRLF line endings).
	Text string
	// AddedFolders and AddedProjects are the entries spliced in; both empty
	// means the file was already up to date and Text equals the input.
	AddedFolders  []*m.FolderNode
	AddedProjects []*m.ProjectEntry
}

// Changed reports whether the patch introduces anything.
func (p *Patch) Changed() bool {
	return len(p.AddedFolders) > 0 || len(p.AddedProjects) > 0
}

// insertion queues lines to be written immediately before Lines[index].
type insertion struct {
	index int
	lines []string
}

// Apply splices the hierarchy's not-yet-registered folders and projects into
// the parsed solution: entry blocks in front of the Global line,
// configuration bindings in front of the project-configuration section's end
// marker, nesting bindings in front of the nesting section's end marker.
// A section that does not exist yet is synthesized in full before EndGlobal.
//
// Existing entries are matched by full hierarchical path (folders) or
// relative descriptor path (projects), never by display name. The hierarchy
// must have been built against this solution's State so that new children of
// existing folders reference the parent's already-assigned GUID.
func Apply(existing *Solution, h *m.Hierarchy) (*Patch, error) {
	if existing.GlobalStart < 0 || existing.GlobalEnd < 0 {
		return nil, fmt.Errorf("solution has no Global block to patch")
	}

	state := existing.State()

	patch := &Patch{}

	for _, f := range h.Folders {
		if !state.HasFolder(f.FullPath) {
			patch.AddedFolders = append(patch.AddedFolders, f)
		}
	}

	for _, p := range h.Projects {
		if !state.HasProject(p.RelPath) {
			patch.AddedProjects = append(patch.AddedProjects, p)
		}
	}

	if !patch.Changed() {
		patch.Text = joinCRLF(existing.Lines)
		return patch, nil
	}

	var inserts []insertion

	inserts = append(inserts, insertion{
		index: existing.GlobalStart,
		lines: entryBlocks(patch),
	})

	inserts = append(inserts, placeSectionLines(
		existing,
		SectionProjectConfiguration,
		"postSolution",
		configurationBody(patch),
	))

	inserts = append(inserts, placeSectionLines(
		existing,
		SectionNestedProjects,
		"preSolution",
		nestingBody(patch),
	))

	patch.Text = joinCRLF(splice(existing.Lines, inserts))

	return patch, nil
}

// entryBlocks renders the Project blocks for everything being added, folders
// first so parents precede children.
func entryBlocks(patch *Patch) []string {
	var lines []string

	for _, f := range patch.AddedFolders {
		lines = append(lines, folderBlockLines(f)...)
	}

	for _, p := range patch.AddedProjects {
		lines = append(lines, projectBlockLines(p)...)
	}

	return lines
}

func configurationBody(patch *Patch) []string {
	var lines []string
	for _, p := range patch.AddedProjects {
		lines = append(lines, configurationLines(p.ID)...)
	}

	return lines
}

func nestingBody(patch *Patch) []string {
	var lines []string

	for _, f := range patch.AddedFolders {
		if f.Parent != nil {
			lines = append(lines, nestingLine(f.ID, f.Parent.ID))
		}
	}

	for _, p := range patch.AddedProjects {
		if p.Folder != nil {
			lines = append(lines, nestingLine(p.ID, p.Folder.ID))
		}
	}

	return lines
}

// placeSectionLines targets the body lines at the section's end marker, or
// wraps them into a freshly synthesized section before EndGlobal when the
// section is missing.
func placeSectionLines(existing *Solution, name, kind string, body []string) insertion {
	if section, ok := existing.Sections[name]; ok {
		return insertion{index: section.End, lines: body}
	}

	wrapped := make([]string, 0, len(body)+2)
	wrapped = append(wrapped, fmt.Sprintf("\tGlobalSection(%s) = %s", name, kind))
	wrapped = append(wrapped, body...)
	wrapped = append(wrapped, "\tEndGlobalSection")

	return insertion{index: existing.GlobalEnd, lines: wrapped}
}

// splice writes pending insertions in front of their target line, preserving
// the queued order when several insertions share an index.
func splice(lines []string, inserts []insertion) []string {
	extra := 0
	for _, ins := range inserts {
		extra += len(ins.lines)
	}

	out := make([]string, 0, len(lines)+extra)

	for i, line := range lines {
		for _, ins := range inserts {
			if ins.index == i {
				out = append(out, ins.lines...)
			}
		}

		out = append(out, line)
	}

	return out
}

func joinCRLF(lines []string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

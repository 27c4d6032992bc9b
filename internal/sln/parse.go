package sln

import (
	"fmt"
	"strings"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// Entry is one parsed Project block: either a solution folder (TypeGUID ==
// FolderTypeGUID) or a project reference.
type Entry struct {
	TypeGUID string
	Name     string
	Path     string
	GUID     string
	// Items are the SolutionItems paths listed inside a folder entry.
	Items []string
}

// IsFolder reports whether the entry is a grouping node.
func (e *Entry) IsFolder() bool {
	return strings.EqualFold(e.TypeGUID, FolderTypeGUID)
}

// Section is one GlobalSection block with its position in the line list, so
// the patcher can splice new lines in front of its EndGlobalSection.
type Section struct {
	Name string
	Kind string // preSolution or postSolution
	// Start and End are line indexes of the GlobalSection/EndGlobalSection
	// markers within Solution.Lines.
	Start int
	End   int
}

// Solution is a parsed solution file. Lines holds the original text
// line-by-line (line endings stripped) so patches can splice by index.
type Solution struct {
	Lines       []string
	Entries     []Entry
	Sections    map[string]*Section
	GlobalStart int // index of the Global line, -1 if absent
	GlobalEnd   int // index of the EndGlobal line, -1 if absent
}

// Parse reads solution text with a tolerant line-oriented parser. It
// recognizes the block grammar explicitly (entry header, section body, end
// marker) and fails on structural violations: an unterminated Project block,
// a GlobalSection outside Global, or a missing EndGlobal.
func Parse(text string) (*Solution, error) {
	lines := splitLines(text)

	s := &Solution{
		Lines:       lines,
		Sections:    make(map[string]*Section),
		GlobalStart: -1,
		GlobalEnd:   -1,
	}

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		switch {
		case strings.HasPrefix(trimmed, "Project("):
			next, err := s.parseProjectBlock(i)
			if err != nil {
				return nil, err
			}

			i = next

		case trimmed == "Global":
			next, err := s.parseGlobalBlock(i)
			if err != nil {
				return nil, err
			}

			i = next

		default:
			i++
		}
	}

	return s, nil
}

// parseProjectBlock consumes one Project..EndProject block starting at line
// start and returns the index after the block.
func (s *Solution) parseProjectBlock(start int) (int, error) {
	entry, err := parseProjectHeader(s.Lines[start])
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", start+1, err)
	}

	i := start + 1
	for i < len(s.Lines) {
		trimmed := strings.TrimSpace(s.Lines[i])

		switch {
		case trimmed == "EndProject":
			s.Entries = append(s.Entries, entry)
			return i + 1, nil

		case strings.HasPrefix(trimmed, "ProjectSection("):
			next, items, err := s.parseProjectSection(i)
			if err != nil {
				return 0, err
			}

			entry.Items = append(entry.Items, items...)
			i = next

		default:
			i++
		}
	}

	return 0, fmt.Errorf("unterminated Project block for %q (line %d)", entry.Name, start+1)
}

func (s *Solution) parseProjectSection(start int) (int, []string, error) {
	var items []string

	for i := start + 1; i < len(s.Lines); i++ {
		trimmed := strings.TrimSpace(s.Lines[i])
		if trimmed == "EndProjectSection" {
			return i + 1, items, nil
		}

		if key, _, found := strings.Cut(trimmed, "="); found {
			items = append(items, strings.TrimSpace(key))
		}
	}

	return 0, nil, fmt.Errorf("unterminated ProjectSection (line %d)", start+1)
}

// parseGlobalBlock consumes Global..EndGlobal, recording every GlobalSection
// span on the way.
func (s *Solution) parseGlobalBlock(start int) (int, error) {
	s.GlobalStart = start

	i := start + 1
	for i < len(s.Lines) {
		trimmed := strings.TrimSpace(s.Lines[i])

		switch {
		case trimmed == "EndGlobal":
			s.GlobalEnd = i
			return i + 1, nil

		case strings.HasPrefix(trimmed, "GlobalSection("):
			section, err := parseSectionHeader(trimmed)
			if err != nil {
				return 0, fmt.Errorf("line %d: %w", i+1, err)
			}

			section.Start = i

			end, err := findSectionEnd(s.Lines, i)
			if err != nil {
				return 0, err
			}

			section.End = end
			s.Sections[section.Name] = section
			i = end + 1

		default:
			i++
		}
	}

	return 0, fmt.Errorf("unterminated Global block (line %d)", start+1)
}

func findSectionEnd(lines []string, start int) (int, error) {
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "EndGlobalSection" {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unterminated GlobalSection (line %d)", start+1)
}

// parseProjectHeader splits
//
//	Project("{TYPE}") = "Name", "Path", "{GUID}"
//
// on its quoted fields.
func parseProjectHeader(line string) (Entry, error) {
	parts := strings.Split(line, "\"")
	if len(parts) < 8 {
		return Entry{}, fmt.Errorf("malformed Project header: %s", strings.TrimSpace(line))
	}

	return Entry{
		TypeGUID: parts[1],
		Name:     parts[3],
		Path:     parts[5],
		GUID:     parts[7],
	}, nil
}

// parseSectionHeader splits "GlobalSection(Name) = kind".
func parseSectionHeader(line string) (*Section, error) {
	rest := strings.TrimPrefix(line, "GlobalSection(")

	name, tail, found := strings.Cut(rest, ")")
	if !found || name == "" {
		return nil, fmt.Errorf("malformed GlobalSection header: %s", line)
	}

	_, kind, _ := strings.Cut(tail, "=")

	return &Section{Name: name, Kind: strings.TrimSpace(kind)}, nil
}

// State reconstructs the registered folder and project identifiers. Folder
// full paths are rebuilt by chaining NestedProjects parent links, so
// existence checks downstream compare full hierarchy positions rather than
// bare display names.
func (s *Solution) State() *m.SolutionState {
	state := &m.SolutionState{
		FolderIDs:  make(map[string]string),
		ProjectIDs: make(map[string]string),
	}

	parents := s.nestedParents()

	byGUID := make(map[string]*Entry, len(s.Entries))
	for i := range s.Entries {
		byGUID[s.Entries[i].GUID] = &s.Entries[i]
	}

	for i := range s.Entries {
		entry := &s.Entries[i]
		if entry.IsFolder() {
			state.FolderIDs[folderFullPath(entry, parents, byGUID)] = entry.GUID
			continue
		}

		state.ProjectIDs[entry.Path] = entry.GUID
	}

	return state
}

// nestedParents maps child GUID to parent GUID from the NestedProjects
// section, if present.
func (s *Solution) nestedParents() map[string]string {
	parents := make(map[string]string)

	section, ok := s.Sections[SectionNestedProjects]
	if !ok {
		return parents
	}

	for i := section.Start + 1; i < section.End; i++ {
		child, parent, found := strings.Cut(strings.TrimSpace(s.Lines[i]), "=")
		if !found {
			continue
		}

		parents[strings.TrimSpace(child)] = strings.TrimSpace(parent)
	}

	return parents
}

func folderFullPath(entry *Entry, parents map[string]string, byGUID map[string]*Entry) string {
	segments := []string{entry.Name}

	guid := entry.GUID
	for range byGUID { // bounded by entry count, guards against cycles
		parentGUID, ok := parents[guid]
		if !ok {
			break
		}

		parent, ok := byGUID[parentGUID]
		if !ok || !parent.IsFolder() {
			break
		}

		segments = append([]string{parent.Name}, segments...)
		guid = parentGUID
	}

	return strings.Join(segments, "\\")
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	// A trailing newline should not register as an extra empty line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

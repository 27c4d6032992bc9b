package model

// ProjectKind identifies the managed project descriptor flavour. It is
// informational only; the emitter maps it to the IDE's project type GUID.
type ProjectKind string

const (
	// KindCSharp is a .csproj descriptor.
	KindCSharp ProjectKind = "csproj"
	// KindFSharp is an .fsproj descriptor.
	KindFSharp ProjectKind = "fsproj"
	// KindVisualBasic is a .vbproj descriptor.
	KindVisualBasic ProjectKind = "vbproj"
)

// FolderNode is one grouping entry in the solution hierarchy. Nodes carry no
// build semantics; they only nest projects and auxiliary files visually.
type FolderNode struct {
	// Name is the display name shown by the IDE.
	Name string
	// FullPath is the backslash-joined hierarchical path ("Extensions\AI\Source").
	// It is the dedup key: no two nodes share a FullPath.
	FullPath string
	// Parent is nil for top-level (category) nodes.
	Parent *FolderNode
	// ID is the node's GUID in braces-upper form ("{8B45...}").
	ID string
	// Depth is the zero-based segment position within FullPath.
	Depth int
	// Items are auxiliary files listed under this folder.
	Items []SolutionItem
}

// SolutionItem is a non-project file attached to a folder for display only.
type SolutionItem struct {
	// RelPath is the file path relative to the solution root, using backslashes.
	RelPath string
}

// ProjectEntry is one discovered project descriptor file.
type ProjectEntry struct {
	// Name is the descriptor file base name without extension.
	Name string
	// RelPath is the descriptor path relative to the solution root, using
	// backslashes. Unique among entries.
	RelPath string
	// ID is the project's GUID in braces-upper form.
	ID string
	// Kind is the descriptor flavour.
	Kind ProjectKind
	// Folder is the node the project nests under.
	Folder *FolderNode
}

// Hierarchy is the complete computed solution structure. Folders are ordered
// parents-before-children so the emitter can write them in one pass.
type Hierarchy struct {
	Folders  []*FolderNode
	Projects []*ProjectEntry
}

// FolderByPath returns the node with the given full path, or nil.
func (h *Hierarchy) FolderByPath(fullPath string) *FolderNode {
	for _, f := range h.Folders {
		if f.FullPath == fullPath {
			return f
		}
	}

	return nil
}

// ItemCount returns the total number of auxiliary files across all folders.
func (h *Hierarchy) ItemCount() int {
	n := 0
	for _, f := range h.Folders {
		n += len(f.Items)
	}

	return n
}

// SolutionState is the set of entries parsed out of an existing solution
// file. It lets an incremental run skip entries that are already registered
// and keep their previously assigned GUIDs.
type SolutionState struct {
	// FolderIDs maps a folder's full hierarchical path to its GUID.
	FolderIDs map[string]string
	// ProjectIDs maps a project's relative descriptor path to its GUID.
	ProjectIDs map[string]string
}

// HasFolder reports whether a folder with the given full path is already
// registered. Matching is by full path, never by display name: two
// categories may legitimately contain same-named submodule folders.
func (s *SolutionState) HasFolder(fullPath string) bool {
	_, ok := s.FolderIDs[fullPath]
	return ok
}

// HasProject reports whether the descriptor path is already registered.
func (s *SolutionState) HasProject(relPath string) bool {
	_, ok := s.ProjectIDs[relPath]
	return ok
}

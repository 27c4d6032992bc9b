package domain

import (
	"sort"
	"strings"

	m "slnforge.dev/pkg/slnforge/internal/model"
	"slnforge.dev/pkg/slnforge/internal/sln"
)

// BuildHierarchy turns flat scan results into the minimal folder-node set
// reachable from top-level category nodes, plus the project entries bound to
// their folders.
//
// Folder paths are split on backslashes; every prefix not yet represented
// gets a node whose parent is the node of the immediately shorter prefix.
// Lookup is by full path, so feeding the same folder path twice never
// duplicates a node. When state from an existing solution is given, entries
// keep their previously assigned GUIDs (matched by full path, not display
// name).
func BuildHierarchy(results []ScanResult, state *m.SolutionState) *m.Hierarchy {
	b := &builder{
		nodes: make(map[string]*m.FolderNode),
		state: state,
	}

	for _, res := range results {
		for _, item := range res.Items {
			node := b.ensure(item.FolderPath)
			node.Items = append(node.Items, m.SolutionItem{RelPath: item.RelPath})
		}
	}

	var projects []*m.ProjectEntry

	for _, res := range results {
		for _, pa := range res.Projects {
			node := b.ensure(pa.FolderPath)

			id := sln.ProjectID(pa.RelPath)
			if state != nil {
				if existing, ok := state.ProjectIDs[pa.RelPath]; ok {
					id = existing
				}
			}

			projects = append(projects, &m.ProjectEntry{
				Name:    pa.Name,
				RelPath: pa.RelPath,
				ID:      id,
				Kind:    pa.Kind,
				Folder:  node,
			})
		}
	}

	folders := make([]*m.FolderNode, 0, len(b.nodes))
	for _, node := range b.nodes {
		folders = append(folders, node)
	}

	// Depth-major order keeps parents ahead of children and makes emission
	// reproducible.
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Depth != folders[j].Depth {
			return folders[i].Depth < folders[j].Depth
		}

		return folders[i].FullPath < folders[j].FullPath
	})

	for _, f := range folders {
		sort.Slice(f.Items, func(i, j int) bool { return f.Items[i].RelPath < f.Items[j].RelPath })
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].RelPath < projects[j].RelPath })

	return &m.Hierarchy{Folders: folders, Projects: projects}
}

type builder struct {
	nodes map[string]*m.FolderNode
	state *m.SolutionState
}

// ensure returns the node for fullPath, creating it and any missing
// ancestors first.
func (b *builder) ensure(fullPath string) *m.FolderNode {
	if node, ok := b.nodes[fullPath]; ok {
		return node
	}

	segments := strings.Split(fullPath, "\\")

	var parent *m.FolderNode

	for depth := range segments {
		prefix := strings.Join(segments[:depth+1], "\\")

		node, ok := b.nodes[prefix]
		if !ok {
			id := sln.FolderID(prefix)
			if b.state != nil {
				if existing, ok := b.state.FolderIDs[prefix]; ok {
					id = existing
				}
			}

			node = &m.FolderNode{
				Name:     segments[depth],
				FullPath: prefix,
				Parent:   parent,
				ID:       id,
				Depth:    depth,
			}
			b.nodes[prefix] = node
		}

		parent = node
	}

	return parent
}

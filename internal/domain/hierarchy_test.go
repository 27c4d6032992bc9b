package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "slnforge.dev/pkg/slnforge/internal/model"
	"slnforge.dev/pkg/slnforge/internal/sln"
)

func scanResultsFixture() []ScanResult {
	return []ScanResult{
		{
			Projects: []ProjectAssignment{
				{
					Name:       "Zonit.Extensions.Ai",
					RelPath:    "Source\\Extensions\\Zonit.Extensions.Ai\\Source\\Zonit.Extensions.Ai.csproj",
					Kind:       m.KindCSharp,
					FolderPath: "Extensions\\AI\\Source",
				},
			},
			Items: []ItemAssignment{
				{RelPath: "Source\\Extensions\\Zonit.Extensions.Ai\\README.md", FolderPath: "Extensions\\AI"},
			},
		},
		{
			Projects: []ProjectAssignment{
				{
					Name:       "Zonit.Services.Dashboard",
					RelPath:    "Source\\Services\\Zonit.Services.Dashboard\\Source\\Zonit.Services.Dashboard.csproj",
					Kind:       m.KindCSharp,
					FolderPath: "Services\\Dashboard\\Source",
				},
			},
		},
	}
}

func TestBuildHierarchy(t *testing.T) {
	h := BuildHierarchy(scanResultsFixture(), nil)

	// Two categories, two submodule folders, two Source subfolders.
	require.Len(t, h.Folders, 6)
	require.Len(t, h.Projects, 2)

	extensions := h.FolderByPath("Extensions")
	require.NotNil(t, extensions)
	assert.Nil(t, extensions.Parent)
	assert.Equal(t, 0, extensions.Depth)

	ai := h.FolderByPath("Extensions\\AI")
	require.NotNil(t, ai)
	assert.Same(t, extensions, ai.Parent)
	assert.Equal(t, 1, ai.Depth)
	require.Len(t, ai.Items, 1)

	aiSource := h.FolderByPath("Extensions\\AI\\Source")
	require.NotNil(t, aiSource)
	assert.Same(t, ai, aiSource.Parent)
	assert.Equal(t, 2, aiSource.Depth)

	project := h.Projects[0]
	assert.Same(t, aiSource, project.Folder)
	assert.NotEmpty(t, project.ID)
}

func TestBuildHierarchyParentsPrecedeChildren(t *testing.T) {
	h := BuildHierarchy(scanResultsFixture(), nil)

	seen := make(map[string]bool)
	for _, f := range h.Folders {
		if f.Parent != nil {
			assert.True(t, seen[f.Parent.FullPath], "parent of %s emitted first", f.FullPath)
		}

		seen[f.FullPath] = true
	}
}

func TestBuildHierarchyIsIdempotent(t *testing.T) {
	// Sharing a folder path across projects must not duplicate nodes,
	// and rebuilding from the same input yields the same paths.
	results := scanResultsFixture()
	results[0].Projects = append(results[0].Projects, ProjectAssignment{
		Name:       "Zonit.Extensions.Ai.Tests",
		RelPath:    "Source\\Extensions\\Zonit.Extensions.Ai\\Source\\Tests.csproj",
		Kind:       m.KindCSharp,
		FolderPath: "Extensions\\AI\\Source",
	})

	first := BuildHierarchy(results, nil)
	second := BuildHierarchy(results, nil)

	require.Equal(t, len(first.Folders), len(second.Folders))
	for i := range first.Folders {
		assert.Equal(t, first.Folders[i].FullPath, second.Folders[i].FullPath)
		assert.Equal(t, first.Folders[i].ID, second.Folders[i].ID)
	}
}

func TestBuildHierarchyStableIDs(t *testing.T) {
	h := BuildHierarchy(scanResultsFixture(), nil)

	ai := h.FolderByPath("Extensions\\AI")
	require.NotNil(t, ai)
	assert.Equal(t, sln.FolderID("Extensions\\AI"), ai.ID)
	assert.Equal(t, sln.ProjectID(h.Projects[0].RelPath), h.Projects[0].ID)
}

func TestBuildHierarchyReusesExistingIDs(t *testing.T) {
	state := &m.SolutionState{
		FolderIDs: map[string]string{
			"Extensions\\AI": "{11111111-1111-1111-1111-111111111111}",
		},
		ProjectIDs: map[string]string{
			"Source\\Extensions\\Zonit.Extensions.Ai\\Source\\Zonit.Extensions.Ai.csproj": "{22222222-2222-2222-2222-222222222222}",
		},
	}

	h := BuildHierarchy(scanResultsFixture(), state)

	ai := h.FolderByPath("Extensions\\AI")
	require.NotNil(t, ai)
	assert.Equal(t, "{11111111-1111-1111-1111-111111111111}", ai.ID)
	assert.Equal(t, "{22222222-2222-2222-2222-222222222222}", h.Projects[0].ID)

	// Entries absent from the state still get deterministic IDs.
	dashboard := h.FolderByPath("Services\\Dashboard")
	require.NotNil(t, dashboard)
	assert.Equal(t, sln.FolderID("Services\\Dashboard"), dashboard.ID)
}

func TestBuildHierarchySameLeafNameInTwoCategories(t *testing.T) {
	// Same display name under two categories must yield two distinct nodes:
	// identity is the full path.
	results := []ScanResult{
		{Projects: []ProjectAssignment{
			{Name: "A", RelPath: "a\\A.csproj", Kind: m.KindCSharp, FolderPath: "Extensions\\Core"},
			{Name: "B", RelPath: "b\\B.csproj", Kind: m.KindCSharp, FolderPath: "Services\\Core"},
		}},
	}

	h := BuildHierarchy(results, nil)

	extCore := h.FolderByPath("Extensions\\Core")
	svcCore := h.FolderByPath("Services\\Core")
	require.NotNil(t, extCore)
	require.NotNil(t, svcCore)
	assert.NotEqual(t, extCore.ID, svcCore.ID)
}

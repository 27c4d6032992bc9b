package sln

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	h := hierarchyFixture()
	text := Write(h, "Zonit.sln")

	parsed, err := Parse(text)
	require.NoError(t, err)

	assert.Len(t, parsed.Entries, len(h.Folders)+len(h.Projects))

	var folders, projects int
	for _, e := range parsed.Entries {
		if e.IsFolder() {
			folders++
		} else {
			projects++
		}
	}

	assert.Equal(t, len(h.Folders), folders)
	assert.Equal(t, len(h.Projects), projects)

	for _, name := range []string{
		SectionSolutionConfiguration,
		SectionProjectConfiguration,
		SectionSolutionProperties,
		SectionNestedProjects,
		SectionExtensibilityGlobals,
	} {
		assert.Contains(t, parsed.Sections, name)
	}

	assert.GreaterOrEqual(t, parsed.GlobalStart, 0)
	assert.Greater(t, parsed.GlobalEnd, parsed.GlobalStart)
}

func TestParseEntryFields(t *testing.T) {
	h := hierarchyFixture()
	parsed, err := Parse(Write(h, "Zonit.sln"))
	require.NoError(t, err)

	byName := make(map[string]Entry)
	for _, e := range parsed.Entries {
		byName[e.Name] = e
	}

	ai, ok := byName["AI"]
	require.True(t, ok)
	assert.True(t, ai.IsFolder())
	assert.Equal(t, FolderID("Extensions\\AI"), ai.GUID)
	assert.Equal(t, []string{"Source\\Extensions\\Zonit.Extensions.Ai\\README.md"}, ai.Items)

	project, ok := byName["Zonit.Extensions.Ai"]
	require.True(t, ok)
	assert.False(t, project.IsFolder())
	assert.Equal(t, h.Projects[0].RelPath, project.Path)
	assert.Equal(t, h.Projects[0].ID, project.GUID)
}

func TestParseState(t *testing.T) {
	h := hierarchyFixture()
	parsed, err := Parse(Write(h, "Zonit.sln"))
	require.NoError(t, err)

	state := parsed.State()

	for _, f := range h.Folders {
		assert.Equal(t, f.ID, state.FolderIDs[f.FullPath], f.FullPath)
	}

	for _, p := range h.Projects {
		assert.Equal(t, p.ID, state.ProjectIDs[p.RelPath], p.RelPath)
	}

	// Two distinct folders named Source keep distinct full paths.
	assert.True(t, state.HasFolder("Extensions\\AI\\Source"))
	assert.True(t, state.HasFolder("Services\\Dashboard\\Source"))
	assert.False(t, state.HasFolder("Source"))
}

func TestParseTolerantOfForeignSections(t *testing.T) {
	text := strings.Join([]string{
		"Microsoft Visual Studio Solution File, Format Version 12.00",
		`Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Docs", "Docs", "{11111111-1111-1111-1111-111111111111}"`,
		"EndProject",
		"Global",
		"\tGlobalSection(TeamFoundationVersionControl) = preSolution",
		"\t\tSccNumberOfProjects = 1",
		"\tEndGlobalSection",
		"EndGlobal",
		"",
	}, "\r\n")

	parsed, err := Parse(text)
	require.NoError(t, err)

	assert.Len(t, parsed.Entries, 1)
	assert.Contains(t, parsed.Sections, "TeamFoundationVersionControl")
	assert.Equal(t, "preSolution", parsed.Sections["TeamFoundationVersionControl"].Kind)
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "unterminated project block",
			text: `Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Docs", "Docs", "{1}"`,
		},
		{
			name: "malformed project header",
			text: "Project(\"{2150E333}\") = broken\r\nEndProject",
		},
		{
			name: "unterminated global block",
			text: "Global\r\n\tGlobalSection(SolutionProperties) = preSolution\r\n\tEndGlobalSection",
		},
		{
			name: "unterminated section",
			text: "Global\r\n\tGlobalSection(SolutionProperties) = preSolution\r\nEndGlobal",
		},
		{
			name: "unterminated project section",
			text: strings.Join([]string{
				`Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Docs", "Docs", "{1}"`,
				"\tProjectSection(SolutionItems) = preProject",
				"\t\tREADME.md = README.md",
				"EndProject",
			}, "\r\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	parsed, err := Parse("")
	require.NoError(t, err)

	assert.Empty(t, parsed.Entries)
	assert.Equal(t, -1, parsed.GlobalStart)
	assert.Equal(t, -1, parsed.GlobalEnd)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Empty(t, splitLines(""))
}

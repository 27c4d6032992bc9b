package sln

import (
	"fmt"
	"strings"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// Write renders a complete solution file for the hierarchy. Section order is
// fixed: header, folder entries (parents first), project entries, then the
// Global block with configuration, properties, nesting and extensibility
// sections. Lines are CRLF-terminated as the format expects.
func Write(h *m.Hierarchy, solutionName string) string {
	var lines []string

	lines = append(lines, headerLines...)

	for _, f := range h.Folders {
		lines = append(lines, folderBlockLines(f)...)
	}

	for _, p := range h.Projects {
		lines = append(lines, projectBlockLines(p)...)
	}

	lines = append(lines, "Global")

	lines = append(lines,
		fmt.Sprintf("\tGlobalSection(%s) = preSolution", SectionSolutionConfiguration),
		fmt.Sprintf("\t\tDebug|%s = Debug|%s", solutionPlatform, solutionPlatform),
		fmt.Sprintf("\t\tRelease|%s = Release|%s", solutionPlatform, solutionPlatform),
		"\tEndGlobalSection",
	)

	lines = append(lines, fmt.Sprintf("\tGlobalSection(%s) = postSolution", SectionProjectConfiguration))
	for _, p := range h.Projects {
		lines = append(lines, configurationLines(p.ID)...)
	}

	lines = append(lines, "\tEndGlobalSection")

	lines = append(lines,
		fmt.Sprintf("\tGlobalSection(%s) = preSolution", SectionSolutionProperties),
		"\t\tHideSolutionNode = FALSE",
		"\tEndGlobalSection",
	)

	lines = append(lines, fmt.Sprintf("\tGlobalSection(%s) = preSolution", SectionNestedProjects))
	lines = append(lines, nestingLines(h)...)
	lines = append(lines, "\tEndGlobalSection")

	lines = append(lines,
		fmt.Sprintf("\tGlobalSection(%s) = postSolution", SectionExtensibilityGlobals),
		"\t\tSolutionGuid = "+SolutionGUID(solutionName),
		"\tEndGlobalSection",
	)

	lines = append(lines, "EndGlobal")

	return strings.Join(lines, "\r\n") + "\r\n"
}

// nestingLines binds every non-root folder and every project to its parent
// folder's GUID.
func nestingLines(h *m.Hierarchy) []string {
	var lines []string

	for _, f := range h.Folders {
		if f.Parent != nil {
			lines = append(lines, nestingLine(f.ID, f.Parent.ID))
		}
	}

	for _, p := range h.Projects {
		if p.Folder != nil {
			lines = append(lines, nestingLine(p.ID, p.Folder.ID))
		}
	}

	return lines
}

// Package sln reads, writes and patches Visual Studio solution files. The
// format is line oriented: a header, a flat list of Project blocks (a fixed
// type GUID marks folder entries) and a Global block of named sections.
package sln

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// FolderTypeGUID marks a Project block as a solution folder rather than a
// buildable project.
const FolderTypeGUID = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"

// Project type GUIDs for the supported descriptor kinds.
const (
	csharpTypeGUID      = "{9A19103F-16F7-4668-BE54-9A1E7A4F7556}"
	fsharpTypeGUID      = "{F2A71F9B-5D33-465A-A702-920D77279786}"
	visualBasicTypeGUID = "{F184B08F-C81C-45F6-A57F-5ABD9991F28F}"
)

// Known Global section names.
const (
	SectionSolutionConfiguration = "SolutionConfigurationPlatforms"
	SectionProjectConfiguration  = "ProjectConfigurationPlatforms"
	SectionSolutionProperties    = "SolutionProperties"
	SectionNestedProjects        = "NestedProjects"
	SectionExtensibilityGlobals  = "ExtensibilityGlobals"
)

var headerLines = []string{
	"Microsoft Visual Studio Solution File, Format Version 12.00",
	"# Visual Studio Version 17",
	"VisualStudioVersion = 17.0.31903.59",
	"MinimumVisualStudioVersion = 10.0.40219.1",
}

// solutionPlatform is the single configuration platform the generator binds
// every project to, in Debug and Release flavours.
const solutionPlatform = "Any CPU"

// idNamespace seeds UUIDv5 derivation for every identifier in the emitted
// file. GUIDs are a pure function of the entry's hierarchical key, so
// regeneration on an unchanged tree is byte-stable. This deliberately
// replaces the fresh-GUID-per-run behavior of earlier generators.
var idNamespace = uuid.MustParse("d9a68ba2-35ee-45fb-98a5-c845f021fe6e")

// FolderID returns the deterministic GUID for a folder's full path.
func FolderID(fullPath string) string {
	return guidFor("folder:" + fullPath)
}

// ProjectID returns the deterministic GUID for a project's relative path.
func ProjectID(relPath string) string {
	return guidFor("project:" + relPath)
}

// SolutionGUID returns the deterministic GUID recorded in
// ExtensibilityGlobals, derived from the solution file name.
func SolutionGUID(name string) string {
	return guidFor("solution:" + name)
}

func guidFor(key string) string {
	return "{" + strings.ToUpper(uuid.NewSHA1(idNamespace, []byte(key)).String()) + "}"
}

// TypeGUIDFor maps a descriptor kind to the IDE's project type GUID.
func TypeGUIDFor(kind m.ProjectKind) string {
	switch kind {
	case m.KindFSharp:
		return fsharpTypeGUID
	case m.KindVisualBasic:
		return visualBasicTypeGUID
	default:
		return csharpTypeGUID
	}
}

// folderBlockLines renders one folder entry, including its attached
// auxiliary files as a SolutionItems section.
func folderBlockLines(f *m.FolderNode) []string {
	lines := []string{
		projectHeaderLine(FolderTypeGUID, f.Name, f.Name, f.ID),
	}

	if len(f.Items) > 0 {
		lines = append(lines, "\tProjectSection(SolutionItems) = preProject")
		for _, item := range f.Items {
			lines = append(lines, fmt.Sprintf("\t\t%s = %s", item.RelPath, item.RelPath))
		}

		lines = append(lines, "\tEndProjectSection")
	}

	return append(lines, "EndProject")
}

// projectBlockLines renders one project entry.
func projectBlockLines(p *m.ProjectEntry) []string {
	return []string{
		projectHeaderLine(TypeGUIDFor(p.Kind), p.Name, p.RelPath, p.ID),
		"EndProject",
	}
}

// projectHeaderLine quotes the header fields verbatim. Paths carry literal
// backslashes, so Go-style %q escaping would corrupt them.
func projectHeaderLine(typeGUID, name, path, guid string) string {
	return fmt.Sprintf(`Project("%s") = "%s", "%s", "%s"`, typeGUID, name, path, guid)
}

// configurationLines renders the four configuration-platform bindings for
// one project GUID.
func configurationLines(id string) []string {
	return []string{
		fmt.Sprintf("\t\t%s.Debug|%s.ActiveCfg = Debug|%s", id, solutionPlatform, solutionPlatform),
		fmt.Sprintf("\t\t%s.Debug|%s.Build.0 = Debug|%s", id, solutionPlatform, solutionPlatform),
		fmt.Sprintf("\t\t%s.Release|%s.ActiveCfg = Release|%s", id, solutionPlatform, solutionPlatform),
		fmt.Sprintf("\t\t%s.Release|%s.Build.0 = Release|%s", id, solutionPlatform, solutionPlatform),
	}
}

// nestingLine renders one NestedProjects binding.
func nestingLine(childID, parentID string) string {
	return fmt.Sprintf("\t\t%s = %s", childID, parentID)
}

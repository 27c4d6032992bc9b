// Package domain contains the solution-structure pipeline: listing
// submodules from the manifest, scanning their trees for projects, and
// building the folder hierarchy the emitter serializes.
package domain

import (
	"bufio"
	"sort"
	"strings"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// ListSubmodules extracts the declared submodule paths from .gitmodules
// content. The result is trimmed, deduplicated and sorted so downstream
// folder assignment iterates in a stable order regardless of declaration
// order in the manifest.
func ListSubmodules(content string) []m.Path {
	seen := make(map[string]struct{})
	paths := make([]string, 0, 8)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		value, ok := parsePathLine(scanner.Text())
		if !ok {
			continue
		}

		if _, dup := seen[value]; dup {
			continue
		}

		seen[value] = struct{}{}
		paths = append(paths, value)
	}

	sort.Strings(paths)

	result := make([]m.Path, 0, len(paths))
	for _, p := range paths {
		result = append(result, m.Path(p))
	}

	return result
}

// parsePathLine recognizes a `path = <value>` declaration. Section headers,
// other keys, comments and blank values are rejected.
func parsePathLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", false
	}

	if strings.TrimSpace(key) != "path" {
		return "", false
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	return value, true
}

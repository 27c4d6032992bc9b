package domain

import (
	"path"
	"strings"
	"unicode"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

// NamingOptions tunes how a submodule's display name is derived from its
// directory name.
type NamingOptions struct {
	// StripPrefixes are organization/product tokens removed from the front
	// of a dot-separated submodule name (e.g. "Zonit").
	StripPrefixes []string
	// Acronyms are names rendered in their canonical upper-case form after
	// stripping (e.g. "Ai" becomes "AI").
	Acronyms []string
}

// Classification is the pure result of classifying one submodule path.
type Classification struct {
	Category    m.Category
	DisplayName string
	// FolderPath is the canonical hierarchy position, "Category\DisplayName".
	FolderPath string
}

// Classify maps a submodule path to its category and target folder path.
//
// The category comes from the first recognized path segment
// (Extensions/Services/Plugins, case-insensitive); Tests/Samples/Tools act
// as fallback buckets when found anywhere in the path; everything else is
// Other. The display name is the submodule's leaf directory name with the
// configured prefix tokens and the category token stripped.
//
// Classify is a pure function; callers log the outcome if they need to.
func Classify(subPath m.Path, opts NamingOptions) Classification {
	normalized := strings.ReplaceAll(string(subPath), "\\", "/")
	segments := strings.Split(path.Clean(normalized), "/")

	category := categoryFor(segments)
	display := displayName(segments[len(segments)-1], category, opts)

	return Classification{
		Category:    category,
		DisplayName: display,
		FolderPath:  category.String() + "\\" + display,
	}
}

func categoryFor(segments []string) m.Category {
	primary := map[string]m.Category{
		"extensions": m.CategoryExtensions,
		"services":   m.CategoryServices,
		"plugins":    m.CategoryPlugins,
	}

	for _, seg := range segments {
		if c, ok := primary[strings.ToLower(seg)]; ok {
			return c
		}
	}

	fallback := map[string]m.Category{
		"tests":   m.CategoryTests,
		"test":    m.CategoryTests,
		"samples": m.CategorySamples,
		"sample":  m.CategorySamples,
		"tools":   m.CategoryTools,
	}

	for _, seg := range segments {
		if c, ok := fallback[strings.ToLower(seg)]; ok {
			return c
		}
	}

	return m.CategoryOther
}

// displayName strips leading org-prefix and category tokens from a
// dot-separated leaf name, applies the acronym table and capitalizes the
// first letter. If stripping consumes the whole name the original leaf is
// kept unchanged.
func displayName(leaf string, category m.Category, opts NamingOptions) string {
	tokens := strings.Split(leaf, ".")

	for len(tokens) > 1 && isStrippable(tokens[0], category, opts) {
		tokens = tokens[1:]
	}

	name := strings.Join(tokens, ".")
	if name == "" {
		name = leaf
	}

	for _, acr := range opts.Acronyms {
		if strings.EqualFold(name, acr) {
			return acr
		}
	}

	return capitalize(name)
}

func isStrippable(token string, category m.Category, opts NamingOptions) bool {
	if strings.EqualFold(token, category.String()) {
		return true
	}

	for _, prefix := range opts.StripPrefixes {
		if strings.EqualFold(token, prefix) {
			return true
		}
	}

	return false
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "slnforge.dev/pkg/slnforge/internal/model"
)

func defaultNaming() NamingOptions {
	return NamingOptions{
		StripPrefixes: []string{"Zonit"},
		Acronyms:      []string{"AI", "UI", "DB"},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		category   m.Category
		display    string
		folderPath string
	}{
		{
			name:       "extension with acronym leaf",
			path:       "Source/Extensions/Zonit.Extensions.Ai",
			category:   m.CategoryExtensions,
			display:    "AI",
			folderPath: "Extensions\\AI",
		},
		{
			name:       "service",
			path:       "Source/Services/Zonit.Services.Dashboard",
			category:   m.CategoryServices,
			display:    "Dashboard",
			folderPath: "Services\\Dashboard",
		},
		{
			name:       "plugin with compound name",
			path:       "Source/Plugins/Zonit.Plugins.Identity.Oidc",
			category:   m.CategoryPlugins,
			display:    "Identity.Oidc",
			folderPath: "Plugins\\Identity.Oidc",
		},
		{
			name:       "case-insensitive segment match",
			path:       "src/SERVICES/Zonit.Services.Workers",
			category:   m.CategoryServices,
			display:    "Workers",
			folderPath: "Services\\Workers",
		},
		{
			name:       "tests fallback bucket",
			path:       "Source/Tests/Zonit.IntegrationTests",
			category:   m.CategoryTests,
			display:    "IntegrationTests",
			folderPath: "Tests\\IntegrationTests",
		},
		{
			name:       "samples fallback bucket",
			path:       "Samples/Zonit.Sample.Blog",
			category:   m.CategorySamples,
			display:    "Sample.Blog",
			folderPath: "Samples\\Sample.Blog",
		},
		{
			name:       "unrecognized path falls back to Other",
			path:       "Vendor/some-lib",
			category:   m.CategoryOther,
			display:    "Some-lib",
			folderPath: "Other\\Some-lib",
		},
		{
			name:       "name reduced to nothing keeps the leaf",
			path:       "Source/Extensions/Zonit",
			category:   m.CategoryExtensions,
			display:    "Zonit",
			folderPath: "Extensions\\Zonit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(m.Path(tt.path), defaultNaming())
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.display, got.DisplayName)
			assert.Equal(t, tt.folderPath, got.FolderPath)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("Source/Services/Zonit.Services.Dashboard", defaultNaming())
	second := Classify("Source/Services/Zonit.Services.Dashboard", defaultNaming())
	assert.Equal(t, first, second)
}

func TestDisplayNameStripsCategoryToken(t *testing.T) {
	// "Extensions" is stripped even without a configured org prefix.
	got := displayName("Extensions.Website", m.CategoryExtensions, NamingOptions{})
	assert.Equal(t, "Website", got)
}

package model

// Path represents a file system path.
type Path string

// Category is the top-level grouping a submodule (and everything under it)
// belongs to in the generated solution.
type Category string

const (
	// CategoryExtensions groups reusable extension packages.
	CategoryExtensions Category = "Extensions"
	// CategoryServices groups hosted service components.
	CategoryServices Category = "Services"
	// CategoryPlugins groups plugin components.
	CategoryPlugins Category = "Plugins"
	// CategoryTests groups test-only submodules.
	CategoryTests Category = "Tests"
	// CategorySamples groups sample/demo submodules.
	CategorySamples Category = "Samples"
	// CategoryTools groups developer tooling submodules.
	CategoryTools Category = "Tools"
	// CategoryOther is the fallback when no known segment matches.
	CategoryOther Category = "Other"
)

// Categories lists every category in the order it appears in the emitted
// solution. The order is fixed so regeneration is reproducible.
var Categories = []Category{
	CategoryExtensions,
	CategoryServices,
	CategoryPlugins,
	CategoryTests,
	CategorySamples,
	CategoryTools,
	CategoryOther,
}

func (c Category) String() string {
	return string(c)
}

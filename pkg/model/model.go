// Package model defines the accessor surface of an evaluated project model:
// a mutable graph of named properties and typed items produced by evaluating
// a build-description document. The model is owned by whoever loaded it;
// consumers borrow it, mutate it in place, and re-evaluate on demand.
package model

// Well-known item kinds.
const (
	ItemCompile          = "Compile"
	ItemReference        = "Reference"
	ItemProjectReference = "ProjectReference"
	ItemAnalyzer         = "Analyzer"
)

// Well-known metadata keys.
const (
	MetadataLink     = "Link"
	MetadataAliases  = "Aliases"
	MetadataHintPath = "HintPath"
	MetadataName     = "Name"
)

// Well-known property names.
const (
	PropertyTargetFramework  = "TargetFramework"
	PropertyTargetFrameworks = "TargetFrameworks"
)

// Item is one evaluated entry of a named item kind. Include is the entry's
// include path exactly as evaluated (relative or absolute). Ordinal
// identifies the item's position among all item entries of the document and
// is only meaningful to the model that produced it.
type Item struct {
	Kind     string
	Include  string
	Metadata map[string]string
	Ordinal  int
}

// Meta returns the metadata value for key, or "" when absent.
func (it Item) Meta(key string) string {
	if it.Metadata == nil {
		return ""
	}
	return it.Metadata[key]
}

// Model is the evaluated project model accessor surface. Implementations are
// not safe for concurrent use; a model instance must be driven by at most one
// caller at a time.
type Model interface {
	// Path returns the document's file path.
	Path() string

	// Dir returns the document's directory.
	Dir() string

	// Language returns the document's declared source language.
	Language() string

	// Property returns the evaluated value of a named property and whether
	// the property is declared at all.
	Property(name string) (string, bool)

	// SetProperty declares or overwrites a property on the underlying
	// document. The change is visible to expressions after Reevaluate.
	SetProperty(name, value string)

	// RemoveProperty deletes a property declaration; no-op when absent.
	RemoveProperty(name string)

	// Items returns the evaluated items of one kind, in document order.
	Items(kind string) []Item

	// AddItem appends an item of the given kind. A nil metadata map adds an
	// item with no metadata.
	AddItem(kind, include string, metadata map[string]string)

	// RemoveItem removes the underlying entry the item was evaluated from.
	// It reports whether an entry was removed. Items obtained before an
	// earlier mutation are stale and must be re-fetched first.
	RemoveItem(item Item) bool

	// Reevaluate re-runs evaluation of the underlying document so that
	// property and item expressions observe earlier mutations.
	Reevaluate() error

	// Save persists the mutated document to its backing storage. Formatting
	// fidelity is the model's responsibility.
	Save() error
}

// Package reference defines the value types used to describe binary,
// project, and analyzer references independently of any project model.
package reference

import "strings"

// Kind classifies how a reference is backed.
type Kind int

const (
	// KindFile is a reference backed by a file on disk.
	KindFile Kind = iota
	// KindUnsupported is any reference this layer cannot store (for example
	// an in-memory image). Mutation operations silently ignore these.
	KindUnsupported
)

// AssemblyIdentity disambiguates a binary reference beyond its file path.
// Name is the short name ("Foo"); FullName is the full display name
// ("Foo, Version=1.0.0.0, Culture=neutral, PublicKeyToken=...").
type AssemblyIdentity struct {
	Name     string
	FullName string
}

// Metadata is a file-backed binary reference together with the aliases it
// was declared with.
type Metadata struct {
	Kind    Kind
	Path    string
	Aliases []string
}

// AliasString joins the reference's aliases into the comma-separated form
// stored in item metadata. Empty when no aliases are declared.
func (m Metadata) AliasString() string {
	return strings.Join(m.Aliases, ",")
}

// Project identifies a reference from one project to another by the target
// project's name and document path.
type Project struct {
	Name    string
	Path    string
	Aliases []string
}

// AliasString joins the reference's aliases into the comma-separated form
// stored in item metadata. Empty when no aliases are declared.
func (p Project) AliasString() string {
	return strings.Join(p.Aliases, ",")
}

// Analyzer is a reference to a diagnostic analyzer.
type Analyzer struct {
	Kind Kind
	Path string
}

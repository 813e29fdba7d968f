// Package paths resolves item include paths against a project directory and
// computes a document's logical (project-relative) location. It is purely
// syntactic: no symlink or casing canonicalization is performed.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/buildgraph/projfile/pkg/model"
)

// Normalizer resolves paths relative to one project directory.
type Normalizer struct {
	projectDir string
}

// New creates a Normalizer for the given project directory.
func New(projectDir string) *Normalizer {
	return &Normalizer{projectDir: filepath.Clean(projectDir)}
}

// ProjectDir returns the directory paths are resolved against.
func (n *Normalizer) ProjectDir() string { return n.projectDir }

// Absolute resolves an include (possibly relative) against the project
// directory using platform path-joining rules.
func (n *Normalizer) Absolute(include string) string {
	if filepath.IsAbs(include) {
		return filepath.Clean(include)
	}
	return filepath.Join(n.projectDir, include)
}

// Relative returns the path's location relative to the project directory,
// using ".." segments for paths outside it. The path is returned unchanged
// when no relative form exists (e.g. different volumes).
func (n *Normalizer) Relative(path string) string {
	abs := n.Absolute(path)
	rel, err := filepath.Rel(n.projectDir, abs)
	if err != nil {
		return path
	}
	return rel
}

// Logical computes a document's logical path. A non-empty link wins
// verbatim. Otherwise a rooted include under the project directory is
// reduced to its project-relative form; a rooted include outside it
// collapses to the bare file name (collisions among unrelated documents are
// accepted); a non-rooted include is returned as-is.
func (n *Normalizer) Logical(include, link string) string {
	if link != "" {
		return link
	}
	if !filepath.IsAbs(include) {
		return include
	}
	if rel, ok := n.underProject(filepath.Clean(include)); ok {
		return rel
	}
	return filepath.Base(include)
}

func (n *Normalizer) underProject(abs string) (string, bool) {
	prefix := n.projectDir + string(filepath.Separator)
	if strings.HasPrefix(abs, prefix) {
		return strings.TrimPrefix(abs, prefix), true
	}
	return "", false
}

// GeneratedSet answers whether a document is generated: a document is
// generated iff its absolute path was not among the model's Compile items
// when the set was first consulted. The set is built once, lazily, and is
// deliberately never rebuilt after later mutation of the item set.
type GeneratedSet struct {
	norm   *Normalizer
	m      model.Model
	known  map[string]struct{}
	primed bool
}

// NewGeneratedSet creates a lazy generated-document classifier over the
// given model.
func NewGeneratedSet(m model.Model, norm *Normalizer) *GeneratedSet {
	return &GeneratedSet{norm: norm, m: m}
}

// IsGenerated reports whether the document at the given path (relative or
// absolute) is generated.
func (g *GeneratedSet) IsGenerated(path string) bool {
	if !g.primed {
		g.known = make(map[string]struct{})
		for _, it := range g.m.Items(model.ItemCompile) {
			g.known[g.norm.Absolute(it.Include)] = struct{}{}
		}
		g.primed = true
	}
	_, ok := g.known[g.norm.Absolute(path)]
	return !ok
}

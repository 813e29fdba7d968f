// Package resolve locates existing reference items in an evaluated project
// model by identity or file path, using ordered fallback tiers. A missing
// match is never an error here; callers decide what absence means.
package resolve

import (
	"path/filepath"
	"strings"

	"github.com/buildgraph/projfile/internal/paths"
	"github.com/buildgraph/projfile/pkg/model"
	"github.com/buildgraph/projfile/pkg/reference"
)

// Reference finds an existing Reference item matching the given identity
// and/or file path. Tiers, first match wins:
//
//  1. include equals the identity's short name (case-insensitive)
//  2. include equals the identity's full display name
//  3. include, or HintPath metadata when present, equals the file path in
//     absolute or project-relative form
//  4. include starts with "<name>," and exactly one item qualifies
//
// Ambiguous or empty candidate sets in tier 4 yield no match.
func Reference(m model.Model, norm *paths.Normalizer, identity *reference.AssemblyIdentity, filePath string) (model.Item, bool) {
	items := m.Items(model.ItemReference)

	if identity != nil && identity.Name != "" {
		for _, it := range items {
			if strings.EqualFold(it.Include, identity.Name) {
				return it, true
			}
		}
	}

	if identity != nil && identity.FullName != "" {
		for _, it := range items {
			if it.Include == identity.FullName {
				return it, true
			}
		}
	}

	if filePath != "" {
		abs := norm.Absolute(filePath)
		rel := norm.Relative(filePath)
		for _, it := range items {
			if pathEquals(it.Include, abs, rel) {
				return it, true
			}
			if hint := it.Meta(model.MetadataHintPath); hint != "" && pathEquals(hint, abs, rel) {
				return it, true
			}
		}
	}

	if identity != nil && identity.Name != "" {
		prefix := identity.Name + ","
		var candidate model.Item
		count := 0
		for _, it := range items {
			if strings.HasPrefix(it.Include, prefix) {
				candidate = it
				count++
			}
		}
		if count == 1 {
			return candidate, true
		}
	}

	return model.Item{}, false
}

// ProjectReference finds an existing ProjectReference item matching the
// given project name and document path: path equality first (absolute or
// project-relative), then equality of the Name metadata entry.
func ProjectReference(m model.Model, norm *paths.Normalizer, name, path string) (model.Item, bool) {
	items := m.Items(model.ItemProjectReference)

	abs := norm.Absolute(path)
	rel := norm.Relative(path)
	for _, it := range items {
		if pathEquals(it.Include, abs, rel) {
			return it, true
		}
	}

	for _, it := range items {
		if it.Meta(model.MetadataName) == name {
			return it, true
		}
	}

	return model.Item{}, false
}

// Analyzer finds an existing Analyzer item whose include equals the given
// path in absolute or project-relative form.
func Analyzer(m model.Model, norm *paths.Normalizer, path string) (model.Item, bool) {
	abs := norm.Absolute(path)
	rel := norm.Relative(path)
	for _, it := range m.Items(model.ItemAnalyzer) {
		if pathEquals(it.Include, abs, rel) {
			return it, true
		}
	}
	return model.Item{}, false
}

// Document finds the first Compile item whose include equals the given path
// in absolute or project-relative form.
func Document(m model.Model, norm *paths.Normalizer, path string) (model.Item, bool) {
	abs := norm.Absolute(path)
	rel := norm.Relative(path)
	for _, it := range m.Items(model.ItemCompile) {
		if pathEquals(it.Include, abs, rel) {
			return it, true
		}
	}
	return model.Item{}, false
}

func pathEquals(include, abs, rel string) bool {
	cleaned := filepath.Clean(include)
	return cleaned == filepath.Clean(abs) || cleaned == filepath.Clean(rel)
}

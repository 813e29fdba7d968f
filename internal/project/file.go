// Package project is the mutation and query layer over one evaluated
// project model: it adds and removes documents, binary references, project
// references, and analyzer references, and fans the model out into one
// structured snapshot per declared build target.
package project

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/buildgraph/projfile/internal/build"
	"github.com/buildgraph/projfile/internal/gac"
	"github.com/buildgraph/projfile/internal/intern"
	"github.com/buildgraph/projfile/internal/language"
	"github.com/buildgraph/projfile/internal/paths"
	"github.com/buildgraph/projfile/internal/resolve"
	"github.com/buildgraph/projfile/pkg/model"
	"github.com/buildgraph/projfile/pkg/reference"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// ErrProjectReferenceNotFound is returned by RemoveProjectReference when no
// matching item exists. Unlike the other remove operations, which are silent
// no-ops on absence, this one reports failure.
var ErrProjectReferenceNotFound = errors.New("project reference not found")

// Config assembles a File's collaborators. Model and Language are required;
// the rest default sensibly.
type Config struct {
	Model     model.Model
	Language  language.Language
	Authority *gac.Authority
	Delegate  build.Delegate
	Logger    *slog.Logger
}

// File drives one project model. It borrows the model for its lifetime and
// mutates it in place; a model instance must be driven by at most one File
// at a time. Call Close on the shutdown path to release interned state.
type File struct {
	m        model.Model
	lang     language.Language
	auth     *gac.Authority
	delegate build.Delegate
	logger   *slog.Logger
	norm     *paths.Normalizer
	gen      *paths.GeneratedSet
	handle   *intern.Handle
}

// New creates a File over the given model.
func New(cfg Config) (*File, error) {
	if cfg.Model == nil {
		return nil, fmt.Errorf("project: model is required")
	}
	if cfg.Language == nil {
		return nil, fmt.Errorf("project: language is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	auth := cfg.Authority
	if auth == nil {
		auth = gac.New(nil, "")
	}
	var delegate build.Delegate = cfg.Delegate
	if delegate == nil {
		delegate = build.Evaluator{}
	}

	norm := paths.New(cfg.Model.Dir())
	handle := intern.Acquire()
	handle.Intern(cfg.Model.Path())
	handle.Intern(cfg.Model.Dir())

	return &File{
		m:        cfg.Model,
		lang:     cfg.Language,
		auth:     auth,
		delegate: delegate,
		logger:   logger,
		norm:     norm,
		gen:      paths.NewGeneratedSet(cfg.Model, norm),
		handle:   handle,
	}, nil
}

// Model returns the underlying model.
func (f *File) Model() model.Model { return f.m }

// Close releases the File's share of process-wide interned state. Release is
// best-effort; failures are swallowed.
func (f *File) Close() {
	f.handle.Release()
}

// Save persists the mutated model to its backing storage.
func (f *File) Save() error {
	return f.m.Save()
}

// AddDocument adds a Compile item for the document at path. When a logical
// path is supplied and differs from the document's project-relative path,
// the item stores the absolute path with a Link metadata entry so the
// on-disk and logical locations diverge. Repeated adds are not deduplicated.
func (f *File) AddDocument(path, logicalPath string) {
	rel := f.norm.Relative(path)
	if logicalPath != "" && logicalPath != rel {
		f.m.AddItem(model.ItemCompile, f.norm.Absolute(path), map[string]string{
			model.MetadataLink: logicalPath,
		})
		return
	}
	f.m.AddItem(model.ItemCompile, rel, nil)
}

// RemoveDocument removes the first Compile item whose include equals the
// relative or absolute form of path. No-op when absent.
func (f *File) RemoveDocument(path string) {
	if it, ok := resolve.Document(f.m, f.norm, path); ok {
		f.m.RemoveItem(it)
	}
}

// AddMetadataReference adds a Reference item for a file-backed binary
// reference; references of any other kind are silently ignored. The stored
// include depends on where the file lives: a shared-assembly-cache file with
// a known identity is stored by full display name, a framework-directory
// file by short name only, and anything else by short name plus a HintPath
// metadata entry.
func (f *File) AddMetadataReference(ref reference.Metadata, identity *reference.AssemblyIdentity) {
	if ref.Kind != reference.KindFile {
		f.logger.Debug("ignoring unsupported reference kind", "path", ref.Path)
		return
	}

	meta := map[string]string{}
	if a := ref.AliasString(); a != "" {
		meta[model.MetadataAliases] = a
	}

	abs := f.norm.Absolute(ref.Path)
	switch {
	case identity != nil && identity.FullName != "" && f.auth.InAssemblyCache(abs):
		// Cache-resolved assemblies need the exact identity to re-resolve.
		f.m.AddItem(model.ItemReference, identity.FullName, metaOrNil(meta))
	case f.auth.InFrameworkDir(abs):
		// Resolution defers to the build engine's framework lookup.
		f.m.AddItem(model.ItemReference, shortName(identity, abs), metaOrNil(meta))
	default:
		meta[model.MetadataHintPath] = f.norm.Relative(abs)
		f.m.AddItem(model.ItemReference, shortName(identity, abs), meta)
	}
}

// RemoveMetadataReference removes the Reference item matching the given
// reference, located via the tiered resolver. No-op when absent.
func (f *File) RemoveMetadataReference(ref reference.Metadata, identity *reference.AssemblyIdentity) {
	if it, ok := resolve.Reference(f.m, f.norm, identity, ref.Path); ok {
		f.m.RemoveItem(it)
	}
}

// AddProjectReference adds a ProjectReference item keyed by the target
// project's path with a Name metadata entry.
func (f *File) AddProjectReference(ref reference.Project) {
	meta := map[string]string{model.MetadataName: ref.Name}
	if a := ref.AliasString(); a != "" {
		meta[model.MetadataAliases] = a
	}
	f.m.AddItem(model.ItemProjectReference, f.norm.Relative(ref.Path), meta)
}

// RemoveProjectReference removes the ProjectReference item matching the
// given name and path. Unlike the other remove operations it fails with
// ErrProjectReferenceNotFound when no item matches.
func (f *File) RemoveProjectReference(name, path string) error {
	it, ok := resolve.ProjectReference(f.m, f.norm, name, path)
	if !ok {
		return fmt.Errorf("%w: %s (%s)", ErrProjectReferenceNotFound, name, path)
	}
	f.m.RemoveItem(it)
	return nil
}

// AddAnalyzerReference adds an Analyzer item for a file-backed analyzer
// reference; other kinds are silently ignored.
func (f *File) AddAnalyzerReference(ref reference.Analyzer) {
	if ref.Kind != reference.KindFile {
		f.logger.Debug("ignoring unsupported analyzer reference kind", "path", ref.Path)
		return
	}
	f.m.AddItem(model.ItemAnalyzer, f.norm.Relative(ref.Path), nil)
}

// RemoveAnalyzerReference removes the Analyzer item whose include equals the
// relative or absolute form of the reference's path. No-op when absent.
func (f *File) RemoveAnalyzerReference(ref reference.Analyzer) {
	if it, ok := resolve.Analyzer(f.m, f.norm, ref.Path); ok {
		f.m.RemoveItem(it)
	}
}

// Documents describes the model's current Compile items.
func (f *File) Documents() []snapshot.Document {
	items := f.m.Items(model.ItemCompile)
	docs := make([]snapshot.Document, 0, len(items))
	for _, it := range items {
		abs := f.norm.Absolute(it.Include)
		link := it.Meta(model.MetadataLink)
		docs = append(docs, snapshot.Document{
			FilePath:    abs,
			LogicalPath: f.norm.Logical(it.Include, link),
			IsLinked:    link != "",
			IsGenerated: f.gen.IsGenerated(abs),
			Kind:        f.lang.SourceKind(it.Include),
		})
	}
	return docs
}

func shortName(identity *reference.AssemblyIdentity, abs string) string {
	if identity != nil && identity.Name != "" {
		return identity.Name
	}
	base := filepath.Base(abs)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func metaOrNil(meta map[string]string) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	return meta
}

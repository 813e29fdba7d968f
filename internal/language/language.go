// Package language provides the per-language capability hooks the fan-out
// controller and mutation engine are parameterized by: source-kind
// classification, snapshot extraction from an executed build, the empty
// failure sentinel, and compiler-argument extraction.
package language

import (
	"strings"

	"github.com/buildgraph/projfile/internal/build"
	"github.com/buildgraph/projfile/internal/buildlog"
	"github.com/buildgraph/projfile/internal/paths"
	"github.com/buildgraph/projfile/pkg/model"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// Env carries the per-project surroundings snapshot extraction needs.
type Env struct {
	Path      string
	Norm      *paths.Normalizer
	Generated *paths.GeneratedSet
	SessionID string
}

// Language is one supported source language.
type Language interface {
	// Name returns the canonical language name.
	Name() string

	// SourceKind classifies a document by its path.
	SourceKind(path string) snapshot.SourceKind

	// FromExecuted extracts a structured snapshot from an executed build.
	FromExecuted(exec *build.Executed, env *Env, log *buildlog.Log) *snapshot.Snapshot

	// Empty produces the failure sentinel carrying only language, path, and
	// the diagnostics accumulated so far.
	Empty(path string, log *buildlog.Log, sessionID string) *snapshot.Snapshot

	// CommandLineArgs renders the compiler arguments for an executed build.
	CommandLineArgs(exec *build.Executed) []string
}

var registry = map[string]Language{
	"csharp":      CSharp{},
	"visualbasic": VisualBasic{},
}

// Lookup finds a language by name, case-insensitively.
func Lookup(name string) (Language, bool) {
	l, ok := registry[strings.ToLower(name)]
	return l, ok
}

// Names returns the supported language names.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// extract builds the snapshot pieces shared by every language.
func extract(l Language, exec *build.Executed, env *Env, log *buildlog.Log) *snapshot.Snapshot {
	docs := make([]snapshot.Document, 0, len(exec.Compile))
	for _, it := range exec.Compile {
		abs := env.Norm.Absolute(it.Include)
		link := it.Meta(model.MetadataLink)
		docs = append(docs, snapshot.Document{
			FilePath:    abs,
			LogicalPath: env.Norm.Logical(it.Include, link),
			IsLinked:    link != "",
			IsGenerated: env.Generated.IsGenerated(abs),
			Kind:        l.SourceKind(it.Include),
		})
	}

	return &snapshot.Snapshot{
		ID:                 env.SessionID,
		Language:           l.Name(),
		Path:               env.Path,
		TargetFramework:    exec.TargetFramework,
		Documents:          docs,
		References:         includes(exec.References),
		ProjectReferences:  includes(exec.ProjectRefs),
		AnalyzerReferences: includes(exec.Analyzers),
		CommandLineArgs:    l.CommandLineArgs(exec),
		Diagnostics:        log.Entries(),
	}
}

// empty builds the failure sentinel shared by every language.
func empty(l Language, path string, log *buildlog.Log, sessionID string) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:          sessionID,
		Language:    l.Name(),
		Path:        path,
		Diagnostics: log.Entries(),
		Empty:       true,
	}
}

// commandLineArgs renders compiler arguments with the given switch prefix
// ("/" for csharp, "-" for visualbasic).
func commandLineArgs(exec *build.Executed, prefix string) []string {
	var args []string
	if v := exec.Properties["OutputType"]; v != "" {
		args = append(args, prefix+"target:"+strings.ToLower(v))
	}
	if v := exec.Properties["DefineConstants"]; v != "" {
		args = append(args, prefix+"define:"+v)
	}
	if v := exec.Properties["LangVersion"]; v != "" {
		args = append(args, prefix+"langversion:"+v)
	}
	for _, it := range exec.References {
		args = append(args, prefix+"reference:"+it.Include)
	}
	return args
}

func includes(items []model.Item) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Include)
	}
	return out
}

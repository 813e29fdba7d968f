// Package build defines the contract between the fan-out controller and the
// external build engine, plus a default delegate that "builds" by projecting
// the current evaluated model. The real compilation step always lives on the
// other side of the Delegate interface.
package build

import (
	"context"

	"github.com/buildgraph/projfile/internal/buildlog"
	"github.com/buildgraph/projfile/pkg/model"
)

// Executed is the outcome of one successful build pass over a model: the
// evaluated state the per-language snapshot factory extracts from.
type Executed struct {
	TargetFramework string
	Properties      map[string]string
	Compile         []model.Item
	References      []model.Item
	ProjectRefs     []model.Item
	Analyzers       []model.Item
}

// Delegate runs one build pass over the model's current state. Ordinary
// build failures are signaled by returning nil with diagnostics appended to
// the log, never by panicking. Cancellation of an in-progress build is the
// delegate's own responsibility.
type Delegate interface {
	Build(ctx context.Context, m model.Model, log *buildlog.Log) *Executed
}

// breakProperty, when evaluated to "true", makes the Evaluator report a
// build failure for the active target. It exists so callers can exercise the
// graceful-degradation path without a real build engine.
const breakProperty = "BuildBreak"

// Evaluator is the default Delegate: it projects the model's evaluated
// properties and items into an Executed without compiling anything.
type Evaluator struct{}

// Build implements Delegate.
func (Evaluator) Build(ctx context.Context, m model.Model, log *buildlog.Log) *Executed {
	if err := ctx.Err(); err != nil {
		log.Errorf("build canceled: %v", err)
		return nil
	}

	tf, _ := m.Property(model.PropertyTargetFramework)
	if v, ok := m.Property(breakProperty); ok && v == "true" {
		log.Errorf("build failed for target %q: %s is set", tf, breakProperty)
		return nil
	}

	props := map[string]string{}
	for _, name := range []string{
		"OutputType", "DefineConstants", "LangVersion", "AssemblyName",
		model.PropertyTargetFramework, model.PropertyTargetFrameworks,
	} {
		if v, ok := m.Property(name); ok {
			props[name] = v
		}
	}

	log.Infof("evaluated %s for target %q", m.Path(), tf)
	return &Executed{
		TargetFramework: tf,
		Properties:      props,
		Compile:         m.Items(model.ItemCompile),
		References:      m.Items(model.ItemReference),
		ProjectRefs:     m.Items(model.ItemProjectReference),
		Analyzers:       m.Items(model.ItemAnalyzer),
	}
}

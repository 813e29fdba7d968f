package language

import (
	"path/filepath"
	"strings"

	"github.com/buildgraph/projfile/internal/build"
	"github.com/buildgraph/projfile/internal/buildlog"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// VisualBasic is the Visual Basic language capability.
type VisualBasic struct{}

// Name implements Language.
func (VisualBasic) Name() string { return "visualbasic" }

// SourceKind implements Language. ".vbx" documents are scripts; everything
// else is a regular source document.
func (VisualBasic) SourceKind(path string) snapshot.SourceKind {
	if strings.EqualFold(filepath.Ext(path), ".vbx") {
		return snapshot.SourceScript
	}
	return snapshot.SourceRegular
}

// FromExecuted implements Language.
func (v VisualBasic) FromExecuted(exec *build.Executed, env *Env, log *buildlog.Log) *snapshot.Snapshot {
	return extract(v, exec, env, log)
}

// Empty implements Language.
func (v VisualBasic) Empty(path string, log *buildlog.Log, sessionID string) *snapshot.Snapshot {
	return empty(v, path, log, sessionID)
}

// CommandLineArgs implements Language using vbc-style "-" switches.
func (VisualBasic) CommandLineArgs(exec *build.Executed) []string {
	return commandLineArgs(exec, "-")
}

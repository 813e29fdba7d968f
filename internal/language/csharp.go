package language

import (
	"path/filepath"
	"strings"

	"github.com/buildgraph/projfile/internal/build"
	"github.com/buildgraph/projfile/internal/buildlog"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// CSharp is the C# language capability.
type CSharp struct{}

// Name implements Language.
func (CSharp) Name() string { return "csharp" }

// SourceKind implements Language. ".csx" documents are scripts; everything
// else is a regular source document.
func (CSharp) SourceKind(path string) snapshot.SourceKind {
	if strings.EqualFold(filepath.Ext(path), ".csx") {
		return snapshot.SourceScript
	}
	return snapshot.SourceRegular
}

// FromExecuted implements Language.
func (c CSharp) FromExecuted(exec *build.Executed, env *Env, log *buildlog.Log) *snapshot.Snapshot {
	return extract(c, exec, env, log)
}

// Empty implements Language.
func (c CSharp) Empty(path string, log *buildlog.Log, sessionID string) *snapshot.Snapshot {
	return empty(c, path, log, sessionID)
}

// CommandLineArgs implements Language using csc-style "/" switches.
func (CSharp) CommandLineArgs(exec *build.Executed) []string {
	return commandLineArgs(exec, "/")
}

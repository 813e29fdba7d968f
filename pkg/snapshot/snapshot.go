// Package snapshot defines the structured, per-target result of driving a
// project model through one build pass, and the diagnostics accumulated on
// the way there.
package snapshot

// SourceKind classifies a document for downstream consumers.
type SourceKind int

const (
	// SourceRegular is an ordinary source document.
	SourceRegular SourceKind = iota
	// SourceScript is a script-flavored document (.csx, .vbx).
	SourceScript
)

// Severity grades a diagnostic message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Diagnostic is one message produced while evaluating or building a model.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Document describes one source document of a built snapshot. FilePath is
// the on-disk location; LogicalPath is the project-relative conceptual
// location, which differs from FilePath for linked documents.
type Document struct {
	FilePath    string
	LogicalPath string
	IsLinked    bool
	IsGenerated bool
	Kind        SourceKind
}

// Snapshot is the structured result for one build target. An Empty snapshot
// is the graceful-degradation sentinel produced when the build delegate
// could not produce an executed model: it carries only the language, the
// document path, and the diagnostics accumulated during the attempt.
type Snapshot struct {
	ID              string
	Language        string
	Path            string
	TargetFramework string

	Documents          []Document
	References         []string
	ProjectReferences  []string
	AnalyzerReferences []string
	CommandLineArgs    []string

	Diagnostics []Diagnostic
	Empty       bool
}

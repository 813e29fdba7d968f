// Package buildlog provides the append-only diagnostic sink handed to the
// build delegate during each build attempt.
package buildlog

import (
	"fmt"
	"strings"

	"github.com/buildgraph/projfile/pkg/snapshot"
)

// Log accumulates diagnostics for one or more build attempts. The zero value
// is ready to use. Not safe for concurrent use.
type Log struct {
	entries []snapshot.Diagnostic
}

// Add appends a diagnostic.
func (l *Log) Add(sev snapshot.Severity, msg string) {
	l.entries = append(l.entries, snapshot.Diagnostic{Severity: sev, Message: msg})
}

// Infof appends an info-severity diagnostic.
func (l *Log) Infof(format string, args ...any) {
	l.Add(snapshot.SeverityInfo, fmt.Sprintf(format, args...))
}

// Warnf appends a warning-severity diagnostic.
func (l *Log) Warnf(format string, args ...any) {
	l.Add(snapshot.SeverityWarning, fmt.Sprintf(format, args...))
}

// Errorf appends an error-severity diagnostic.
func (l *Log) Errorf(format string, args ...any) {
	l.Add(snapshot.SeverityError, fmt.Sprintf(format, args...))
}

// Entries returns the accumulated diagnostics in append order. The returned
// slice is a copy.
func (l *Log) Entries() []snapshot.Diagnostic {
	out := make([]snapshot.Diagnostic, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of accumulated diagnostics.
func (l *Log) Len() int { return len(l.entries) }

// String renders the log one diagnostic per line.
func (l *Log) String() string {
	var b strings.Builder
	for _, d := range l.entries {
		switch d.Severity {
		case snapshot.SeverityError:
			b.WriteString("error: ")
		case snapshot.SeverityWarning:
			b.WriteString("warning: ")
		}
		b.WriteString(d.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

// Package output renders command results in terminal, markdown, or JSON
// form depending on the selected output mode.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode selects an output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output to the given streams.
type Renderer struct {
	out  io.Writer
	errw io.Writer
	mode Mode
}

// NewRenderer creates a Renderer. An empty mode means auto.
func NewRenderer(out, errw io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errw: errw, mode: mode}
}

// Out returns the renderer's standard output stream.
func (r *Renderer) Out() io.Writer { return r.out }

// EffectiveMode resolves auto to text on a terminal and markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return ModeText
		}
	}
	return ModeMarkdown
}

// Header prints a section heading.
func (r *Renderer) Header(text string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		fmt.Fprintf(r.out, "## %s\n\n", text)
	default:
		fmt.Fprintf(r.out, "%s\n%s\n", text, strings.Repeat("-", len(text)))
	}
}

// Infof prints an informational line to stderr.
func (r *Renderer) Infof(format string, args ...any) {
	fmt.Fprintf(r.errw, format+"\n", args...)
}

// Table renders rows under the given column headers, honoring the mode.
func (r *Renderer) Table(cols []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// JSON renders v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

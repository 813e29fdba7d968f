package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildgraph/projfile/internal/hclmodel"
	"github.com/buildgraph/projfile/internal/language"
	"github.com/buildgraph/projfile/pkg/model"
)

const multiTargetDoc = `project {
  language = "csharp"

  properties {
    TargetFrameworks = "net6.0;net7.0"
    DefineConstants  = "TF_${TargetFramework}"
  }

  item "Compile" {
    include = "src/app.cs"
  }
}
`

// Each fan-out pass re-evaluates the document, so expressions referencing
// the single-target property observe the target being built.
func TestFanOut_PerTargetInterpolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.proj.hcl")
	require.NoError(t, os.WriteFile(path, []byte(multiTargetDoc), 0o644))

	m, err := hclmodel.Load(path)
	require.NoError(t, err)

	lang, ok := language.Lookup("csharp")
	require.True(t, ok)
	f, err := New(Config{Model: m, Language: lang})
	require.NoError(t, err)
	defer f.Close()

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Contains(t, snaps[0].CommandLineArgs, "/define:TF_net6.0")
	assert.Contains(t, snaps[1].CommandLineArgs, "/define:TF_net7.0")

	_, present := m.Property(model.PropertyTargetFramework)
	assert.False(t, present, "the temporary override does not leak into the document")

	// Saving now must not persist any trace of the fan-out.
	require.NoError(t, f.Save())
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `TargetFramework  =`)
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildgraph/projfile/internal/cli/config"
	"github.com/buildgraph/projfile/internal/project"
)

const testDoc = `project {
  language = "csharp"

  properties {
    TargetFrameworks = "net6.0;net7.0"
  }

  item "Compile" {
    include = "src/app.cs"
  }
}
`

func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "app.proj.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_Version(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "projfile")
}

func TestRoot_SnapshotsJSON(t *testing.T) {
	path := writeTestProject(t)

	out, err := runCommand(t, "--project", path, "--output", "json", "snapshots")
	require.NoError(t, err)
	assert.Contains(t, out, `"net6.0"`)
	assert.Contains(t, out, `"net7.0"`)
}

func TestRoot_AddFilePersists(t *testing.T) {
	path := writeTestProject(t)

	_, err := runCommand(t, "--project", path, "add-file", "src/util.cs")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "src/util.cs")

	out, err := runCommand(t, "--project", path, "--output", "json", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "src/util.cs")
}

func TestRoot_RemoveMissingProjectReferenceFails(t *testing.T) {
	path := writeTestProject(t)

	_, err := runCommand(t, "--project", path, "remove-projref", "Lib", "../lib/lib.proj.hcl")
	require.ErrorIs(t, err, project.ErrProjectReferenceNotFound)
}

func TestRoot_MissingProject(t *testing.T) {
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(old) })
	_, err = runCommand(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project document")
}

package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildgraph/projfile/internal/build"
	"github.com/buildgraph/projfile/internal/buildlog"
	"github.com/buildgraph/projfile/internal/language"
	"github.com/buildgraph/projfile/internal/modeltest"
	"github.com/buildgraph/projfile/pkg/model"
)

func newFile(t *testing.T, m *modeltest.InMemory, delegate build.Delegate) *File {
	t.Helper()
	lang, ok := language.Lookup("csharp")
	require.True(t, ok)
	f, err := New(Config{Model: m, Language: lang, Delegate: delegate})
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestSnapshots_MultiTargetFanOut(t *testing.T) {
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFrameworks, "net6.0;net7.0").
		WithItem(model.ItemCompile, "a.cs", nil)
	f := newFile(t, m, nil)

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, "net6.0", snaps[0].TargetFramework)
	assert.Equal(t, "net7.0", snaps[1].TargetFramework)

	_, present := m.Property(model.PropertyTargetFramework)
	assert.False(t, present, "single-target property is absent again after fan-out")
	assert.Equal(t, 3, m.Reevals, "one per target plus the restoring pass")
}

func TestSnapshots_SingleTargetUnchanged(t *testing.T) {
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFramework, "net6.0")
	f := newFile(t, m, nil)

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	v, present := m.Property(model.PropertyTargetFramework)
	assert.True(t, present)
	assert.Equal(t, "net6.0", v)
	assert.Zero(t, m.Reevals, "no fan-out, no forced re-evaluation")
}

func TestSnapshots_RestoresOriginalValue(t *testing.T) {
	// An empty single-target value with a declared multi-target list still
	// fans out, and must restore the empty value afterwards, not remove it.
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFramework, "").
		WithProperty(model.PropertyTargetFrameworks, "net6.0;net7.0")
	f := newFile(t, m, nil)

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	v, present := m.Property(model.PropertyTargetFramework)
	assert.True(t, present, "property existed before, so it is restored, not removed")
	assert.Equal(t, "", v)
}

// failFor fails the build whenever the active target matches.
type failFor struct {
	target string
}

func (d failFor) Build(ctx context.Context, m model.Model, log *buildlog.Log) *build.Executed {
	tf, _ := m.Property(model.PropertyTargetFramework)
	if tf == d.target {
		log.Errorf("no build for %s", tf)
		return nil
	}
	return build.Evaluator{}.Build(ctx, m, log)
}

func TestSnapshots_BuildFailureDegradesToSentinel(t *testing.T) {
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFrameworks, "net6.0;net7.0").
		WithItem(model.ItemCompile, "a.cs", nil)
	f := newFile(t, m, failFor{target: "net6.0"})

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err, "a per-target failure never aborts the fan-out")
	require.Len(t, snaps, 2)

	assert.True(t, snaps[0].Empty)
	assert.Equal(t, "csharp", snaps[0].Language)
	assert.Equal(t, "/proj/app.proj.hcl", snaps[0].Path)
	require.NotEmpty(t, snaps[0].Diagnostics)
	assert.Contains(t, snaps[0].Diagnostics[0].Message, "net6.0")

	assert.False(t, snaps[1].Empty, "the sibling target still builds")
	assert.Equal(t, "net7.0", snaps[1].TargetFramework)

	_, present := m.Property(model.PropertyTargetFramework)
	assert.False(t, present, "restoration runs even when a target failed")
}

func TestSnapshots_CancellationBetweenIterations(t *testing.T) {
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFrameworks, "net6.0;net7.0")
	f := newFile(t, m, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Snapshots(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, present := m.Property(model.PropertyTargetFramework)
	assert.False(t, present, "restoration runs on cancellation too")
}

func TestSnapshots_BlankTokensDropped(t *testing.T) {
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFrameworks, " net6.0 ; ;net7.0; ")
	f := newFile(t, m, nil)

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "net6.0", snaps[0].TargetFramework)
	assert.Equal(t, "net7.0", snaps[1].TargetFramework)
}

func TestSnapshots_SnapshotContents(t *testing.T) {
	m := modeltest.New("/proj/app.proj.hcl", "csharp").
		WithProperty(model.PropertyTargetFramework, "net6.0").
		WithProperty("OutputType", "Library").
		WithProperty("DefineConstants", "DEBUG;TRACE").
		WithItem(model.ItemCompile, "src/a.cs", nil).
		WithItem(model.ItemCompile, "/elsewhere/b.cs", map[string]string{model.MetadataLink: "b.cs"}).
		WithItem(model.ItemReference, "System.Xml", nil)
	f := newFile(t, m, nil)

	snaps, err := f.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	s := snaps[0]

	require.Len(t, s.Documents, 2)
	assert.Equal(t, "src/a.cs", s.Documents[0].LogicalPath)
	assert.False(t, s.Documents[0].IsLinked)
	assert.Equal(t, "b.cs", s.Documents[1].LogicalPath)
	assert.True(t, s.Documents[1].IsLinked)

	assert.Equal(t, []string{"System.Xml"}, s.References)
	assert.Contains(t, s.CommandLineArgs, "/target:library")
	assert.Contains(t, s.CommandLineArgs, "/define:DEBUG;TRACE")
	assert.Contains(t, s.CommandLineArgs, "/reference:System.Xml")
	assert.NotEmpty(t, s.ID)
}

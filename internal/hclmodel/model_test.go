package hclmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildgraph/projfile/pkg/model"
)

const sampleDoc = `# build description for the app
project {
  language = "csharp"

  properties {
    OutputType       = "Library"
    TargetFrameworks = "net6.0;net7.0"
  }

  item "Compile" {
    include = "src/app.cs"
  }

  item "Reference" {
    include  = "Newtonsoft.Json"
    metadata = { HintPath = "libs/Newtonsoft.Json.dll" }
  }
}
`

func parseSample(t *testing.T) *Model {
	t.Helper()
	m, err := Parse([]byte(sampleDoc), "/proj/app.proj.hcl")
	require.NoError(t, err)
	return m
}

func TestParse(t *testing.T) {
	m := parseSample(t)

	assert.Equal(t, "/proj/app.proj.hcl", m.Path())
	assert.Equal(t, "/proj", m.Dir())
	assert.Equal(t, "csharp", m.Language())

	v, ok := m.Property("OutputType")
	require.True(t, ok)
	assert.Equal(t, "Library", v)

	_, ok = m.Property("Missing")
	assert.False(t, ok)

	compiles := m.Items(model.ItemCompile)
	require.Len(t, compiles, 1)
	assert.Equal(t, "src/app.cs", compiles[0].Include)

	refs := m.Items(model.ItemReference)
	require.Len(t, refs, 1)
	assert.Equal(t, "libs/Newtonsoft.Json.dll", refs[0].Meta(model.MetadataHintPath))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `project { include = `},
		{"missing project block", `language = "csharp"`},
		{"item without include", "project {\n  item \"Compile\" {}\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "/proj/bad.proj.hcl")
			assert.Error(t, err)
		})
	}
}

func TestPropertyInterpolation(t *testing.T) {
	src := `project {
  properties {
    Configuration = "Debug"
    OutDir        = "bin/${Configuration}"
  }

  item "Compile" {
    include = "${OutDir}/gen.cs"
  }
}
`
	m, err := Parse([]byte(src), "/proj/app.proj.hcl")
	require.NoError(t, err)

	v, ok := m.Property("OutDir")
	require.True(t, ok)
	assert.Equal(t, "bin/Debug", v)

	items := m.Items(model.ItemCompile)
	require.Len(t, items, 1)
	assert.Equal(t, "bin/Debug/gen.cs", items[0].Include)

	// Expressions observe an overridden property only after re-evaluation.
	m.SetProperty("Configuration", "Release")
	assert.Equal(t, "bin/Debug", m.Items(model.ItemCompile)[0].Include)

	require.NoError(t, m.Reevaluate())
	assert.Equal(t, "bin/Release/gen.cs", m.Items(model.ItemCompile)[0].Include)
}

func TestSetRemoveProperty(t *testing.T) {
	m := parseSample(t)

	m.SetProperty(model.PropertyTargetFramework, "net6.0")
	v, ok := m.Property(model.PropertyTargetFramework)
	require.True(t, ok)
	assert.Equal(t, "net6.0", v)

	require.NoError(t, m.Reevaluate())
	v, ok = m.Property(model.PropertyTargetFramework)
	require.True(t, ok)
	assert.Equal(t, "net6.0", v, "the override survives re-evaluation")

	m.RemoveProperty(model.PropertyTargetFramework)
	_, ok = m.Property(model.PropertyTargetFramework)
	assert.False(t, ok)

	require.NoError(t, m.Reevaluate())
	_, ok = m.Property(model.PropertyTargetFramework)
	assert.False(t, ok, "removal also survives re-evaluation")
}

func TestAddRemoveItem(t *testing.T) {
	m := parseSample(t)

	m.AddItem(model.ItemCompile, "src/new.cs", map[string]string{model.MetadataLink: "new.cs"})
	compiles := m.Items(model.ItemCompile)
	require.Len(t, compiles, 2)
	assert.Equal(t, "src/new.cs", compiles[1].Include)
	assert.Equal(t, "new.cs", compiles[1].Meta(model.MetadataLink))

	require.NoError(t, m.Reevaluate())
	require.Len(t, m.Items(model.ItemCompile), 2, "the added item is part of the document")

	removed := m.RemoveItem(m.Items(model.ItemCompile)[1])
	assert.True(t, removed)
	require.Len(t, m.Items(model.ItemCompile), 1)

	require.NoError(t, m.Reevaluate())
	assert.Len(t, m.Items(model.ItemCompile), 1)
	assert.Len(t, m.Items(model.ItemReference), 1, "unrelated items are untouched")
}

func TestRemoveItem_StaleOrdinal(t *testing.T) {
	m := parseSample(t)

	stale := m.Items(model.ItemReference)[0]
	require.True(t, m.RemoveItem(m.Items(model.ItemCompile)[0]))

	// The reference item shifted down; the stale ordinal no longer matches
	// any block only when beyond the end.
	refreshed := m.Items(model.ItemReference)
	require.Len(t, refreshed, 1)
	assert.NotEqual(t, stale.Ordinal, refreshed[0].Ordinal)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.proj.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	m.AddItem(model.ItemCompile, "src/extra.cs", nil)
	require.NoError(t, m.Save())

	again, err := Load(path)
	require.NoError(t, err)
	compiles := again.Items(model.ItemCompile)
	require.Len(t, compiles, 2)
	assert.Equal(t, "src/extra.cs", compiles[1].Include)

	// hclwrite keeps untouched formatting, including comments.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# build description for the app")
	assert.Contains(t, string(raw), `OutputType       = "Library"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.proj.hcl"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("project", "p", "", "")
	fs.String("language", "", "")
	fs.String("frameworks-dir", "", "")
	fs.StringSlice("gac-root", nil, "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, "csharp", cfg.Language)
	assert.Equal(t, "auto", cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Project)
}

func TestLoadConfig_File(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	content := `project: app.proj.hcl
language: visualbasic
frameworks_dir: /fw
gac_roots:
  - /gac1
  - /gac2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projfile.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, "app.proj.hcl", cfg.Project)
	assert.Equal(t, "visualbasic", cfg.Language)
	assert.Equal(t, "/fw", cfg.FrameworksDir)
	assert.Equal(t, []string{"/gac1", "/gac2"}, cfg.GacRoots)
	assert.Equal(t, filepath.Join(dir, "projfile.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_FileFoundUpward(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projfile.yaml"), []byte("language: visualbasic\n"), 0o644))
	sub := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, "visualbasic", cfg.Language)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projfile.yaml"), []byte("language: visualbasic\n"), 0o644))
	chdir(t, dir)
	t.Setenv("PROJFILE_LANGUAGE", "csharp")

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, "csharp", cfg.Language)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	chdir(t, t.TempDir())
	t.Setenv("PROJFILE_OUTPUT", "markdown")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--output", "json", "--gac-root", "/g1", "--gac-root", "/g2"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, []string{"/g1", "/g2"}, cfg.GacRoots)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad output", []string{"--output", "xml"}, "unknown output format"},
		{"bad language", []string{"--language", "fsharp"}, "unknown language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(ResetConfig)
			chdir(t, t.TempDir())

			fs := newFlagSet()
			require.NoError(t, fs.Parse(tt.args))

			_, err := LoadConfig("", fs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

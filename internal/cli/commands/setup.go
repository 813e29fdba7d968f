// Package commands implements the projfile subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/buildgraph/projfile/internal/build"
	"github.com/buildgraph/projfile/internal/cli/config"
	"github.com/buildgraph/projfile/internal/cli/output"
	"github.com/buildgraph/projfile/internal/gac"
	"github.com/buildgraph/projfile/internal/hclmodel"
	"github.com/buildgraph/projfile/internal/language"
	"github.com/buildgraph/projfile/internal/project"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	File     *project.File
	Renderer *output.Renderer
}

// NewCommandContext loads the project document and assembles the mutation
// layer over it. The returned cleanup must be called (typically via defer);
// it releases the file's interned state.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		var err error
		cfg, err = config.LoadConfig("", cmd.Root().PersistentFlags())
		if err != nil {
			return nil, nil, err
		}
	}
	logger := cfg.NewLogger()

	if cfg.Project == "" {
		return nil, nil, fmt.Errorf("no project document specified (use --project or set project in projfile.yaml)")
	}

	m, err := hclmodel.Load(cfg.Project)
	if err != nil {
		return nil, nil, err
	}

	// The document's declared language wins; the config supplies a default.
	langName := m.Language()
	if langName == "" {
		langName = cfg.Language
	}
	lang, ok := language.Lookup(langName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown language %q declared by %s", langName, cfg.Project)
	}

	f, err := project.New(project.Config{
		Model:     m,
		Language:  lang,
		Authority: gac.New(cfg.GacRoots, cfg.FrameworksDir),
		Delegate:  build.Evaluator{},
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	cleanup := func() {
		f.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		File:     f,
		Renderer: r,
	}, cleanup, nil
}

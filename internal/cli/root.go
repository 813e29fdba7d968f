// Package cli provides the command-line interface for projfile.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildgraph/projfile/internal/cli/commands"
	"github.com/buildgraph/projfile/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "projfile",
		Short: "projfile - build-description document mutation and query tool",
		Long: `projfile mutates and queries evaluated build-description documents.

It adds and removes source documents, binary references, project references,
and analyzer references, and fans a multi-targeted document out into one
structured snapshot per declared build target.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./projfile.yaml)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "path to the project document")
	rootCmd.PersistentFlags().String("language", "", "source language when the document declares none")
	rootCmd.PersistentFlags().String("frameworks-dir", "", "framework reference-assembly directory")
	rootCmd.PersistentFlags().StringSlice("gac-root", nil, "shared-assembly-cache root (repeatable)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("language", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"csharp", "visualbasic"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewSnapshotsCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewAddFileCommand())
	rootCmd.AddCommand(commands.NewRemoveFileCommand())
	rootCmd.AddCommand(commands.NewAddRefCommand())
	rootCmd.AddCommand(commands.NewRemoveRefCommand())
	rootCmd.AddCommand(commands.NewAddProjRefCommand())
	rootCmd.AddCommand(commands.NewRemoveProjRefCommand())
	rootCmd.AddCommand(commands.NewAddAnalyzerCommand())
	rootCmd.AddCommand(commands.NewRemoveAnalyzerCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

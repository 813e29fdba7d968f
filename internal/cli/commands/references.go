package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildgraph/projfile/pkg/reference"
)

// identityFlags builds an AssemblyIdentity from the --name/--full-name
// flags, or nil when neither is set.
func identityFlags(name, fullName string) *reference.AssemblyIdentity {
	if name == "" && fullName == "" {
		return nil
	}
	return &reference.AssemblyIdentity{Name: name, FullName: fullName}
}

// NewAddRefCommand creates the add-ref command.
func NewAddRefCommand() *cobra.Command {
	var (
		name     string
		fullName string
		aliases  []string
	)

	cmd := &cobra.Command{
		Use:   "add-ref <path>",
		Short: "Add a binary reference",
		Long: `Add a Reference item for the binary at the given path.

How the reference is stored depends on where the file lives: under a
shared-assembly-cache root with --full-name it is stored by full display
name; under the framework reference-assembly directory by short name only;
anywhere else by short name plus a HintPath metadata entry.`,
		Example: `  # A local library, stored with a hint path
  projfile --project app.proj.hcl add-ref libs/Newtonsoft.Json.dll --name Newtonsoft.Json

  # A framework assembly, stored by short name
  projfile --project app.proj.hcl add-ref /usr/lib/mono/4.5-api/System.Xml.dll`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.AddMetadataReference(reference.Metadata{
				Kind:    reference.KindFile,
				Path:    args[0],
				Aliases: aliases,
			}, identityFlags(name, fullName))
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("added reference %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "assembly short name")
	cmd.Flags().StringVar(&fullName, "full-name", "", "assembly full display name")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "extern alias (repeatable)")
	return cmd
}

// NewRemoveRefCommand creates the remove-ref command.
func NewRemoveRefCommand() *cobra.Command {
	var (
		name     string
		fullName string
	)

	cmd := &cobra.Command{
		Use:   "remove-ref <path>",
		Short: "Remove a binary reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.RemoveMetadataReference(reference.Metadata{
				Kind: reference.KindFile,
				Path: args[0],
			}, identityFlags(name, fullName))
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("removed reference %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "assembly short name")
	cmd.Flags().StringVar(&fullName, "full-name", "", "assembly full display name")
	return cmd
}

// NewAddProjRefCommand creates the add-projref command.
func NewAddProjRefCommand() *cobra.Command {
	var aliases []string

	cmd := &cobra.Command{
		Use:   "add-projref <name> <path>",
		Short: "Add a reference to another project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.AddProjectReference(reference.Project{
				Name:    args[0],
				Path:    args[1],
				Aliases: aliases,
			})
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("added project reference %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "extern alias (repeatable)")
	return cmd
}

// NewRemoveProjRefCommand creates the remove-projref command.
func NewRemoveProjRefCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-projref <name> <path>",
		Short: "Remove a reference to another project",
		Long: `Remove the ProjectReference item matching the given name and path.

Unlike the other remove commands, removing a project reference that does
not exist is an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cmdCtx.File.RemoveProjectReference(args[0], args[1]); err != nil {
				return err
			}
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("removed project reference %s", args[0])
			return nil
		},
	}
}

// NewAddAnalyzerCommand creates the add-analyzer command.
func NewAddAnalyzerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-analyzer <path>",
		Short: "Add an analyzer reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.AddAnalyzerReference(reference.Analyzer{
				Kind: reference.KindFile,
				Path: args[0],
			})
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("added analyzer %s", args[0])
			return nil
		},
	}
}

// NewRemoveAnalyzerCommand creates the remove-analyzer command.
func NewRemoveAnalyzerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-analyzer <path>",
		Short: "Remove an analyzer reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.RemoveAnalyzerReference(reference.Analyzer{
				Kind: reference.KindFile,
				Path: args[0],
			})
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("removed analyzer %s", args[0])
			return nil
		},
	}
}

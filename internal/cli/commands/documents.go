package commands

import (
	"github.com/spf13/cobra"
)

// NewAddFileCommand creates the add-file command.
func NewAddFileCommand() *cobra.Command {
	var link string

	cmd := &cobra.Command{
		Use:   "add-file <path>",
		Short: "Add a source document to the project",
		Long: `Add a Compile item for the document at the given path.

With --link, the document keeps its on-disk location but appears at the
given logical path inside the project; the stored include is then the
absolute path with a Link metadata entry.`,
		Example: `  # Add a document by project-relative path
  projfile --project app.proj.hcl add-file src/util.cs

  # Link a document from outside the project directory
  projfile --project app.proj.hcl add-file ../shared/version.cs --link version.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.AddDocument(args[0], link)
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("added %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "logical path the document appears under")
	return cmd
}

// NewRemoveFileCommand creates the remove-file command.
func NewRemoveFileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-file <path>",
		Short: "Remove a source document from the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmdCtx.File.RemoveDocument(args[0])
			if err := cmdCtx.File.Save(); err != nil {
				return err
			}
			cmdCtx.Renderer.Infof("removed %s", args[0])
			return nil
		},
	}
}

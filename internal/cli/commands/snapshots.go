package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/buildgraph/projfile/internal/cli/output"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// NewSnapshotsCommand creates the snapshots command.
func NewSnapshotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "Build one structured snapshot per declared target",
		Long: `Evaluate the project document once per declared build target and print
the resulting snapshots in declared order.

A document declaring TargetFrameworks = "net6.0;net7.0" with no
TargetFramework set yields two snapshots; a single-target document yields
one. A target whose build fails degrades to an empty snapshot carrying the
accumulated diagnostics.`,
		Example: `  # Summarize snapshots for each target
  projfile --project app.proj.hcl snapshots

  # Full snapshot detail as JSON
  projfile --project app.proj.hcl snapshots --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshots(cmd)
		},
	}
}

func runSnapshots(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snaps, err := cmdCtx.File.Snapshots(cmd.Context())
	if err != nil {
		return fmt.Errorf("snapshots: %w", err)
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(snaps)
	}

	r.Header(fmt.Sprintf("Snapshots (%d)", len(snaps)))
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			displayTarget(s),
			s.Language,
			strconv.Itoa(len(s.Documents)),
			strconv.Itoa(len(s.References)),
			strconv.Itoa(len(s.Diagnostics)),
			strconv.FormatBool(s.Empty),
		})
	}
	r.Table([]string{"Target", "Language", "Documents", "References", "Diagnostics", "Empty"}, rows)

	if cmdCtx.Cfg.Verbose {
		for _, s := range snaps {
			renderSnapshotDetail(r, s)
		}
	}
	return nil
}

func renderSnapshotDetail(r *output.Renderer, s *snapshot.Snapshot) {
	r.Header(fmt.Sprintf("Target %s", displayTarget(s)))
	if len(s.CommandLineArgs) > 0 {
		rows := make([][]string, 0, len(s.CommandLineArgs))
		for _, a := range s.CommandLineArgs {
			rows = append(rows, []string{a})
		}
		r.Table([]string{"Argument"}, rows)
	}
	if len(s.Documents) > 0 {
		rows := make([][]string, 0, len(s.Documents))
		for _, d := range s.Documents {
			rows = append(rows, []string{
				d.LogicalPath,
				d.FilePath,
				strconv.FormatBool(d.IsLinked),
				strconv.FormatBool(d.IsGenerated),
			})
		}
		r.Table([]string{"Logical Path", "File Path", "Linked", "Generated"}, rows)
	}
	for _, d := range s.Diagnostics {
		r.Infof("%s", d.Message)
	}
}

func displayTarget(s *snapshot.Snapshot) string {
	if s.TargetFramework == "" {
		return "(default)"
	}
	return s.TargetFramework
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/buildgraph/projfile/internal/cli/output"
	"github.com/buildgraph/projfile/pkg/model"
	"github.com/buildgraph/projfile/pkg/snapshot"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the documents and references of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	docs := cmdCtx.File.Documents()
	m := cmdCtx.File.Model()

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{
			"documents":          docs,
			"references":         m.Items(model.ItemReference),
			"projectReferences":  m.Items(model.ItemProjectReference),
			"analyzerReferences": m.Items(model.ItemAnalyzer),
		})
	}

	r.Header(fmt.Sprintf("Documents (%d)", len(docs)))
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			d.LogicalPath,
			d.FilePath,
			strconv.FormatBool(d.IsLinked),
			strconv.FormatBool(d.IsGenerated),
			kindName(d.Kind),
		})
	}
	r.Table([]string{"Logical Path", "File Path", "Linked", "Generated", "Kind"}, rows)

	listItems(r, "References", m.Items(model.ItemReference))
	listItems(r, "Project References", m.Items(model.ItemProjectReference))
	listItems(r, "Analyzer References", m.Items(model.ItemAnalyzer))
	return nil
}

func listItems(r *output.Renderer, title string, items []model.Item) {
	if len(items) == 0 {
		return
	}
	r.Header(fmt.Sprintf("%s (%d)", title, len(items)))
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Include,
			it.Meta(model.MetadataName),
			it.Meta(model.MetadataHintPath),
			it.Meta(model.MetadataAliases),
		})
	}
	r.Table([]string{"Include", "Name", "Hint Path", "Aliases"}, rows)
}

func kindName(k snapshot.SourceKind) string {
	if k == snapshot.SourceScript {
		return "script"
	}
	return "regular"
}

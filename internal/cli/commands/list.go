package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/cli/output"
	"github.com/leapstack-labs/dsfetch/internal/fetch"
)

// ListEntry is one row of the list command's JSON output.
type ListEntry struct {
	catalog.Dataset
	Present bool `json:"present"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all datasets in the catalog",
		Long: `List every dataset in the catalog, grouped by family, with its source,
destination and whether it is currently present.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Plain table

Use --output to override: auto, text, plain, json`,
		Example: `  # List datasets
  dsfetch list

  # List datasets as JSON
  dsfetch list --output json

  # Include datasets from an extra catalog file
  dsfetch list --catalog more-datasets.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	entries := make([]ListEntry, 0, len(cmdCtx.Catalog))
	for _, family := range cmdCtx.Catalog.Families() {
		for _, d := range cmdCtx.Catalog.Family(family) {
			entries = append(entries, ListEntry{Dataset: d, Present: fetch.Present(d.Marker)})
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(entries)
	case output.ModeText:
		renderListTable(r.Writer(), entries, table.StyleLight)
	default:
		renderListTable(r.Writer(), entries, table.StyleDefault)
	}

	present := 0
	for _, e := range entries {
		if e.Present {
			present++
		}
	}
	r.Printf("(%d datasets, %d present)\n", len(entries), present)
	return nil
}

func renderListTable(w io.Writer, entries []ListEntry, style table.Style) {
	titleCaser := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	t.AppendHeader(table.Row{"Family", "Dataset", "Kind", "Source", "Destination", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})

	family := ""
	for _, e := range entries {
		if family != "" && e.Family != family {
			t.AppendSeparator()
		}
		family = e.Family

		status := "missing"
		if e.Present {
			status = "present"
		}
		t.AppendRow(table.Row{
			e.Family,
			e.Name,
			titleCaser.String(string(e.Kind)),
			e.SourceURL(),
			e.Dest,
			status,
		})
	}

	t.Render()
	_, _ = fmt.Fprintln(w)
}

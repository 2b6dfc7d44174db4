package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/NivBraz/linkwidgets/internal/app"
	"github.com/NivBraz/linkwidgets/internal/widget"
)

var (
	topDays  int
	topTable bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most visited links",
	Long: `
Run the top-n widget. Without --days this is the page-load request; with
--days it presses the matching day button.
`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func init() {
	topCmd.Flags().IntVarP(&topDays, "days", "d", 0, "Day window button to press (1, 7, 30)")
	topCmd.Flags().BoolVarP(&topTable, "table", "t", false, "Print a terminal table instead of HTML")
}

func runTop(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := a.TopN(ctx, topDays); err != nil {
			return err
		}

		if !topTable {
			markup, err := a.ResultsHTML(ctx, widget.TopNResultsClass)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), markup)
			return nil
		}

		rows, err := a.TopNRows(ctx)
		if err != nil {
			return err
		}
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Link", "Count"})
		for _, row := range rows {
			t.AppendRow(toRow(row))
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	})
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

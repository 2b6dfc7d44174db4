package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/NivBraz/linkwidgets/internal/app"
	"github.com/NivBraz/linkwidgets/internal/widget"
)

var searchTable bool

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search links by name or URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchTable, "table", "t", false, "Print a terminal table instead of HTML")
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := a.Search(ctx, args[0]); err != nil {
			return err
		}

		if !searchTable {
			markup, err := a.ResultsHTML(ctx, widget.SearchResultsClass)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), markup)
			return nil
		}

		rows, err := a.SearchRows(ctx)
		if err != nil {
			return err
		}
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Link", "URL"})
		for _, row := range rows {
			t.AppendRow(toRow(row))
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	})
}

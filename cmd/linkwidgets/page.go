package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NivBraz/linkwidgets/internal/app"
)

var (
	pageTerm string
	pageOut  string
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Render the whole page with every widget filled in",
	Long: `
Load the page (page.file from the config, or the built-in page), fire the
load trigger of the top-n widget and, when --term is set, the show event of
the search widget, then write the resulting HTML.
`,
	Args: cobra.NoArgs,
	RunE: runPage,
}

func init() {
	pageCmd.Flags().StringVar(&pageTerm, "term", "", "Search term to show results for")
	pageCmd.Flags().StringVarP(&pageOut, "out", "o", "", "Write the page to this file instead of stdout")
}

func runPage(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		page, err := a.Page(ctx, pageTerm)
		if err != nil {
			return err
		}
		if pageOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), page)
			return nil
		}
		if err := os.WriteFile(pageOut, []byte(page), 0644); err != nil {
			return fmt.Errorf("error writing page: %w", err)
		}
		return nil
	})
}

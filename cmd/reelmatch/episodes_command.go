package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelmatch/internal/matcher"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var strict bool
	var order string

	cmd := &cobra.Command{
		Use:   "episodes <query>",
		Short: "Look up the episode list for a series",
		Long: `Search TMDB for a series and print its full episode list. Useful for
checking what a rename pass would match against.

Examples:
  reelmatch episodes "Breaking Bad"
  reelmatch episodes --strict "The Office (US)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			sortOrder, ok := validOrders[order]
			if !ok {
				return fmt.Errorf("--order must be one of airdate, dvd, absolute (got %q)", order)
			}

			client, policy, err := ctx.tmdbClient()
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			results, err := client.SearchSeries(runCtx, query)
			if err != nil {
				return fmt.Errorf("search series: %w", err)
			}
			selected, err := matcher.SelectSearchResults(query, results, strict, policy)
			if err != nil {
				return err
			}

			series := selected[0]
			episodes, err := client.ListEpisodes(runCtx, series, sortOrder)
			if err != nil {
				return fmt.Errorf("list episodes: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (TMDB %d), %d episodes\n", series.Name, series.ID, len(episodes))

			rows := make([][]string, 0, len(episodes))
			for _, c := range episodes {
				ep := c.Episode
				if ep == nil {
					continue
				}
				aired := ""
				if !ep.AirDate.IsZero() {
					aired = ep.AirDate.Format("2006-01-02")
				}
				rows = append(rows, []string{
					fmt.Sprintf("S%02dE%02d", ep.Season, ep.Episode),
					ep.Title,
					aired,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Episode", "Title", "Aired"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the query matches more than one series")
	cmd.Flags().StringVar(&order, "order", "airdate", "Episode numbering: airdate, dvd, absolute")

	return cmd
}

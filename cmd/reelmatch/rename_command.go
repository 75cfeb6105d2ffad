package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reelmatch/internal/history"
	"reelmatch/internal/media"
	"reelmatch/internal/providers"
	"reelmatch/internal/renamer"
)

var validModes = map[string]struct{}{
	"auto": {}, "series": {}, "movie": {}, "music": {},
}

var validOrders = map[string]providers.SortOrder{
	"airdate":  providers.AirdateOrder,
	"dvd":      providers.DVDOrder,
	"absolute": providers.AbsoluteOrder,
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var mode string
	var strict bool
	var query string
	var year int
	var order string
	var action string
	var conflict string

	cmd := &cobra.Command{
		Use:   "rename <path>...",
		Short: "Match files against metadata and rename them into the library",
		Long: `Match the given files or directories against online metadata and rename
them into the configured library layout.

The mode decides how files are interpreted: series matching groups files by
shared naming and assigns episodes, movie matching resolves each video on its
own, music matching reads embedded audio tags. Auto mode classifies the batch
and picks the fitting mode.

Examples:
  reelmatch rename ~/downloads/Breaking.Bad.S01
  reelmatch rename --mode movie --year 1999 matrix.mkv
  reelmatch rename --strict --query "The Office (US)" ~/downloads/office
  reelmatch rename --action dryrun ~/downloads`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if _, ok := validModes[mode]; !ok {
				return fmt.Errorf("--mode must be one of auto, series, movie, music (got %q)", mode)
			}
			sortOrder, ok := validOrders[order]
			if !ok {
				return fmt.Errorf("--order must be one of airdate, dvd, absolute (got %q)", order)
			}
			if action != "" {
				cfg.Rename.Action = strings.ToLower(strings.TrimSpace(action))
			}
			if conflict != "" {
				cfg.Rename.OnConflict = strings.ToLower(strings.TrimSpace(conflict))
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if mode != "music" {
				if err := cfg.RequireTMDB(); err != nil {
					return err
				}
			}

			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}
			engine, err := ctx.buildEngine(logger)
			if err != nil {
				return err
			}

			files, err := media.ScanPaths(args)
			if err != nil {
				return fmt.Errorf("scan paths: %w", err)
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No media files found.")
				return nil
			}

			opts := renamer.Options{
				Strict: strict || cfg.Matching.Strict,
				Query:  query,
				Year:   year,
				Order:  sortOrder,
			}

			runCtx := cmd.Context()
			var result *renamer.Result
			switch mode {
			case "series":
				result, err = engine.MatchSeries(runCtx, files, opts)
			case "movie":
				result, err = engine.MatchMovie(runCtx, files, opts)
			case "music":
				result, err = engine.MatchMusic(runCtx, files, opts)
			default:
				result, err = engine.MatchAuto(runCtx, files, opts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			plan := renamer.BuildPlan(cfg, result.Matches)
			printPlan(out, cfg.Paths.LibraryDir, plan, result.Unmatched)

			if len(plan.Items) == 0 {
				return nil
			}
			if plan.Action == "dryrun" {
				fmt.Fprintln(out, "Dry run; no files were changed.")
				return nil
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			execResult, err := renamer.Execute(runCtx, cfg, plan, store, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Applied %d, skipped %d.\n", len(execResult.Applied), len(execResult.Skipped))
			if execResult.BatchID != "" {
				fmt.Fprintf(out, "Batch %s (revert with 'reelmatch history revert %s')\n", execResult.BatchID, execResult.BatchID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "auto", "Matching mode: auto, series, movie, music")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on ambiguity instead of picking the best guess")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Override the inferred search query")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Narrow movie searches to a release year")
	cmd.Flags().StringVar(&order, "order", "airdate", "Episode numbering: airdate, dvd, absolute")
	cmd.Flags().StringVar(&action, "action", "", "Override rename action: move, copy, hardlink, symlink, dryrun")
	cmd.Flags().StringVar(&conflict, "conflict", "", "Override conflict handling: skip, fail, override")

	return cmd
}

func printPlan(out io.Writer, libraryDir string, plan renamer.Plan, unmatched []media.File) {
	if len(plan.Items) > 0 {
		rows := make([][]string, 0, len(plan.Items))
		for _, item := range plan.Items {
			rows = append(rows, []string{
				filepath.Base(item.Source),
				displayTarget(libraryDir, item.Target),
				item.DisplayName,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"File", "Target", "Identity"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft},
		))
	} else {
		fmt.Fprintln(out, "Nothing to rename.")
	}

	for _, err := range plan.Errors {
		fmt.Fprintf(out, "warning: %v\n", err)
	}
	if len(unmatched) > 0 {
		fmt.Fprintf(out, "Unmatched (%d):\n", len(unmatched))
		for _, f := range unmatched {
			fmt.Fprintf(out, "  %s\n", f.Path)
		}
	}
}

// displayTarget shortens targets under the library root for readability.
func displayTarget(libraryDir, target string) string {
	if libraryDir == "" {
		return target
	}
	rel, err := filepath.Rel(libraryDir, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return rel
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelmatch/internal/history"
	"reelmatch/internal/renamer"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and revert past renames",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryRevertCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recorded renames, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No rename history.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					shortBatchID(entry.BatchID),
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					entry.Action,
					entry.DisplayName,
					yesNo(entry.Reverted),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Batch", "When", "Action", "Identity", "Reverted"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")

	return cmd
}

func newHistoryRevertCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revert [batch-id]",
		Short: "Undo a rename batch (latest when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runCtx := cmd.Context()
			var batchID string
			if len(args) > 0 {
				batchID = strings.TrimSpace(args[0])
			}
			if batchID == "" {
				batchID, err = store.LatestBatchID(runCtx)
				if err != nil {
					return err
				}
			}

			lock := history.NewLock(cfg.Paths.HistoryDB)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			if err := renamer.Revert(runCtx, store, batchID, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted batch %s\n", batchID)
			return nil
		},
	}

	return cmd
}

func shortBatchID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"docshelf/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded organization runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Run history is disabled (history.enabled = false).")
				return nil
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limitFlag)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				mode := "organize"
				if run.Simulate {
					mode = "simulate"
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					mode,
					run.Root,
					strconv.Itoa(run.TotalFiles),
					strconv.Itoa(run.SuccessfulMoves),
					strconv.Itoa(run.FailedMoves),
					strconv.Itoa(run.SkippedFiles),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Mode", "Source", "Scanned", "Moved", "Failed", "Skipped"},
				rows, 4, 5, 6, 7,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docshelf/internal/oplog"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var (
		logFlag      string
		simulateFlag bool
	)

	cmd := &cobra.Command{
		Use:   "undo [operation-log]",
		Short: "Reverse the file moves recorded in an operation log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			logPath := strings.TrimSpace(logFlag)
			if len(args) == 1 {
				logPath = args[0]
			}
			if logPath == "" {
				logPath = cfg.Paths.OperationLog
			}

			undo := oplog.NewUndo(simulateFlag, logger)
			renderer := newProgressRenderer()
			result, err := undo.Run(cmd.Context(), logPath, func(current, total int) {
				renderer.Notify("undo", current, total)
			})
			renderer.Finish()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if simulateFlag {
				fmt.Fprintln(out, "Simulation only; no files were restored.")
			}
			fmt.Fprintf(out, "Undone %d of %d recorded operation(s); %d failed.\n",
				result.Undone, result.Records, result.Failed)
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "warning: %s\n", msg)
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d operation(s) could not be undone", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFlag, "log", "", "Operation log to undo (defaults to paths.operation_log)")
	cmd.Flags().BoolVarP(&simulateFlag, "simulate", "n", false, "Report what would be restored without touching any file")
	return cmd
}

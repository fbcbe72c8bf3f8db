package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docshelf/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		linesFlag  int
		followFlag bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the docshelf log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.Paths.LogDir, "docshelf.log")
			out := cmd.OutOrStdout()
			err = logs.Tail(cmd.Context(), path, logs.TailOptions{
				Limit:  linesFlag,
				Follow: followFlag,
			}, func(line string) {
				fmt.Fprintln(out, line)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&linesFlag, "lines", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&followFlag, "follow", "f", false, "Keep following the log for new lines")
	return cmd
}

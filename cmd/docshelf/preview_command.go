package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docshelf/internal/organizer"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag string
		sinceFlag  string
		untilFlag  string
	)

	cmd := &cobra.Command{
		Use:   "preview <source-dir>",
		Short: "Show which files would be organized, and where, without moving anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outputFlag)
			if output == "" {
				output = cfg.Paths.OutputDir
			}
			since, until, err := parseDateRange(sinceFlag, untilFlag)
			if err != nil {
				return err
			}

			core := organizer.New(cfg, true, logger)
			renderer := newProgressRenderer()
			result, runErr := core.Organize(cmd.Context(), organizer.Request{
				Root:     args[0],
				Output:   output,
				Since:    since,
				Until:    until,
				Progress: renderer.Notify,
			})
			renderer.Finish()
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			if len(result.Matches) == 0 {
				fmt.Fprintf(out, "No matches among %d scanned file(s).\n", result.TotalFiles)
				return nil
			}

			rows := make([][]string, 0, len(result.Matches))
			for _, m := range result.Matches {
				date := ""
				if m.HasDate {
					date = m.FileDate.Format("2006-01-02")
				}
				rows = append(rows, []string{
					m.FilePath,
					m.CompanyName,
					fmt.Sprintf("%.1f", m.MatchScore),
					date,
					m.SuggestedPath,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"File", "Company", "Score", "Date", "Destination"}, rows, 3))
			fmt.Fprintf(out, "%d of %d file(s) would be organized; %d skipped.\n",
				len(result.Matches), result.TotalFiles, result.SkippedFiles)
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "warning: %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination root used for suggested paths (defaults to paths.output_dir)")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Only consider files dated on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "Only consider files dated on or before this day (YYYY-MM-DD)")
	return cmd
}

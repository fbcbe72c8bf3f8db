package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docshelf/internal/config"
	"docshelf/internal/history"
	"docshelf/internal/logging"
	"docshelf/internal/oplog"
	"docshelf/internal/organizer"
	"docshelf/internal/services"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag   string
		logFlag      string
		sinceFlag    string
		untilFlag    string
		simulateFlag bool
	)

	cmd := &cobra.Command{
		Use:   "organize <source-dir>",
		Short: "Match files against configured companies and move them into the output tree",
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

			runID := uuid.NewString()
			runCtx := services.WithRunID(cmd.Context(), runID)
			logger = logger.With(logging.String(logging.FieldRunID, runID))

			core := organizer.New(cfg, simulateFlag, logger)

			logPath := strings.TrimSpace(logFlag)
			if logPath == "" {
				logPath = cfg.Paths.OperationLog
			}
			if !simulateFlag {
				opLog, err := oplog.Open(logPath, logger)
				if err != nil {
					return err
				}
				defer opLog.Close()
				core.SetOperationLog(opLog)
			}

			renderer := newProgressRenderer()
			started := time.Now()
			result, runErr := core.Organize(runCtx, organizer.Request{
				Root:     args[0],
				Output:   output,
				Since:    since,
				Until:    until,
				Progress: renderer.Notify,
			})
			renderer.Finish()
			finished := time.Now()

			if result != nil {
				recordRun(runCtx, cfg, logger, history.Run{
					ID:              runID,
					StartedAt:       started,
					FinishedAt:      finished,
					Root:            args[0],
					Output:          output,
					LogPath:         logPath,
					Simulate:        simulateFlag,
					TotalFiles:      result.TotalFiles,
					ProcessedFiles:  result.ProcessedFiles,
					SuccessfulMoves: result.SuccessfulMoves,
					FailedMoves:     result.FailedMoves,
					SkippedFiles:    result.SkippedFiles,
					ErrorCount:      len(result.Errors),
				})
				printRunSummary(cmd.OutOrStdout(), result, simulateFlag)
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination root for organized files (defaults to paths.output_dir)")
	cmd.Flags().StringVar(&logFlag, "log", "", "Operation log path (defaults to paths.operation_log)")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Only organize files dated on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "Only organize files dated on or before this day (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&simulateFlag, "simulate", "n", false, "Report what would happen without touching any file")
	return cmd
}

func parseDateRange(since, until string) (time.Time, time.Time, error) {
	parse := func(value, flag string) (time.Time, error) {
		value = strings.TrimSpace(value)
		if value == "" {
			return time.Time{}, nil
		}
		parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --%s value %q: expected YYYY-MM-DD", flag, value)
		}
		return parsed, nil
	}

	start, err := parse(since, "since")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parse(until, "until")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func printRunSummary(out io.Writer, result *organizer.Result, simulate bool) {
	verb := "Moved"
	if simulate {
		fmt.Fprintln(out, "Simulation only; no files were moved.")
		verb = "Would move"
	}

	rows := [][]string{
		{"Files scanned", strconv.Itoa(result.TotalFiles)},
		{"Matched", strconv.Itoa(result.ProcessedFiles)},
		{"Skipped", strconv.Itoa(result.SkippedFiles)},
	}
	if !simulate {
		rows = append(rows,
			[]string{"Moved", strconv.Itoa(result.SuccessfulMoves)},
			[]string{"Failed", strconv.Itoa(result.FailedMoves)},
		)
	}
	fmt.Fprintln(out, renderTable([]string{"Summary", "Count"}, rows, 2))

	if len(result.Matches) > 0 && simulate {
		matchRows := make([][]string, 0, len(result.Matches))
		for _, m := range result.Matches {
			matchRows = append(matchRows, []string{
				m.FilePath,
				m.CompanyName,
				fmt.Sprintf("%.1f", m.MatchScore),
				m.SuggestedPath,
			})
		}
		fmt.Fprintf(out, "%s %d file(s):\n", verb, len(result.Matches))
		fmt.Fprintln(out, renderTable([]string{"File", "Company", "Score", "Destination"}, matchRows, 3))
	}

	for _, msg := range result.Errors {
		fmt.Fprintf(out, "warning: %s\n", msg)
	}
}

// recordRun persists the run in the history store. History failures never
// fail the organization itself.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run history.Run) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("history store unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.RecordRun(ctx, run); err != nil {
		logger.Warn("failed to record run history", logging.Error(err))
	}
}

package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"docshelf/internal/category"
	"docshelf/internal/config"
	"docshelf/internal/dates"
	"docshelf/internal/logging"
	"docshelf/internal/match"
	"docshelf/internal/oplog"
	"docshelf/internal/scandir"
	"docshelf/internal/services"
)

// Core ties the scanner, matcher, date extractor, and mover into one
// engine. Construct it once per run configuration; it is not safe for
// concurrent use.
type Core struct {
	matcher    *match.Matcher
	dates      *dates.Extractor
	categories *category.Table
	scanner    *scandir.Scanner
	mover      *Mover
	logger     *slog.Logger
	simulate   bool
}

// Request describes one organization run.
type Request struct {
	Root     string
	Output   string
	Since    time.Time
	Until    time.Time
	Progress Progress
}

// New builds the engine from configuration. Company profiles, matching
// settings, scan filters, and category extras all come from cfg; the core
// never reaches out to any persistence mechanism itself.
func New(cfg *config.Config, simulate bool, logger *slog.Logger) *Core {
	engineLogger := logging.NewComponentLogger(logger, "organizer")

	norm := normalizerFromConfig(cfg)
	matcher := match.New(match.Settings{
		Threshold:     cfg.Matching.MinThreshold,
		FilenameBonus: cfg.Matching.FilenameBonus,
		PathPenalty:   cfg.Matching.PathPenalty,
	}, norm)
	for _, company := range cfg.Companies {
		matcher.AddCompany(match.Profile{
			Name:               company.Name,
			Aliases:            company.Aliases,
			RequiredKeywords:   company.RequiredKeywords,
			ExcludedStandalone: company.ExcludedStandalone,
		})
	}

	categories := category.NewTable()
	for ext, name := range cfg.Categories.Extensions {
		cat, ok := category.Parse(name)
		if !ok {
			engineLogger.Warn("unknown category name in config",
				logging.String("extension", ext),
				logging.String("category", name),
			)
			continue
		}
		categories.Register(ext, cat)
	}

	return &Core{
		matcher: matcher,
		dates:   dates.NewExtractor(),
		scanner: scandir.New(scandir.Filters{
			IncludeExtensions: cfg.Scanner.IncludeExtensions,
			ExcludeExtensions: cfg.Scanner.ExcludeExtensions,
			ExcludeFolders:    cfg.Scanner.ExcludeFolders,
			MaxFileSizeMB:     cfg.Scanner.MaxFileSizeMB,
		}),
		categories: categories,
		mover:      NewMover(simulate, nil, logger),
		logger:     engineLogger,
		simulate:   simulate,
	}
}

// SetOperationLog attaches the durable operation log. Without one the run
// still works but cannot be undone.
func (c *Core) SetOperationLog(log *oplog.Logger) {
	c.mover.SetOperationLog(log)
}

// Matcher exposes the engine's matcher for preview-style inspection.
func (c *Core) Matcher() *match.Matcher {
	return c.matcher
}

// Organize scans req.Root, matches every surviving file against the
// registered companies, and relocates matches under req.Output. Input
// validation failures abort before any scan; per-file failures are
// recorded in the result and the run continues.
func (c *Core) Organize(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, c.logger)
	logger.Info("starting organization run",
		logging.String("root", req.Root),
		logging.String("output", req.Output),
		logging.Bool("simulate", c.simulate),
	)

	result := &Result{}

	logger = logging.WithContext(services.WithPhase(ctx, PhaseScan), c.logger)
	notify(req.Progress, PhaseScan, 0, 0)
	files, err := c.scanner.Scan(req.Root, func(current, total int) {
		notify(req.Progress, PhaseScan, current, total)
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, PhaseScan, "enumerate files", "Failed to scan source directory", err)
	}
	result.TotalFiles = len(files)
	logger.Info("scan completed", logging.Int("total_files", result.TotalFiles))
	if len(files) == 0 {
		return result, nil
	}

	logger = logging.WithContext(services.WithPhase(ctx, PhaseAnalyze), c.logger)
	notify(req.Progress, PhaseAnalyze, 0, len(files))
	for i, filePath := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		notify(req.Progress, PhaseAnalyze, i+1, len(files))

		fileMatch, err := c.analyze(filePath, req.Since, req.Until)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("analyze %s: %v", filePath, err))
			result.SkippedFiles++
			continue
		}
		if fileMatch == nil {
			result.SkippedFiles++
			continue
		}
		logger.Debug("match found",
			logging.String("file", filePath),
			logging.String("company", fileMatch.CompanyName),
			logging.Float64("score", fileMatch.MatchScore),
		)
		result.Matches = append(result.Matches, *fileMatch)
	}
	result.ProcessedFiles = len(result.Matches)

	if c.simulate {
		logger.Info("simulate mode, skipping move phase", logging.Int("matches", result.ProcessedFiles))
		return result, nil
	}

	logger = logging.WithContext(services.WithPhase(ctx, PhaseMove), c.logger)
	notify(req.Progress, PhaseMove, 0, len(result.Matches))
	for i, fileMatch := range result.Matches {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		notify(req.Progress, PhaseMove, i+1, len(result.Matches))

		if err := c.moveMatch(fileMatch, req.Output); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("move %s: %v", fileMatch.FilePath, err))
			result.FailedMoves++
			continue
		}
		result.SuccessfulMoves++
	}

	logger.Info("organization run completed",
		logging.Int("successful_moves", result.SuccessfulMoves),
		logging.Int("failed_moves", result.FailedMoves),
		logging.Int("skipped_files", result.SkippedFiles),
	)
	return result, nil
}

// analyze determines company, category, date, and suggested path for one
// file. A nil FileMatch with nil error means the file is skipped (no match
// or outside the requested date range).
func (c *Core) analyze(filePath string, since, until time.Time) (*FileMatch, error) {
	filename := filepath.Base(filePath)

	fileDate, hasDate := c.dates.FromFilename(filename)
	if !hasDate {
		fileDate, hasDate = c.dates.FromFileStats(filePath)
	}
	if hasDate {
		if !since.IsZero() && fileDate.Before(since) {
			return nil, nil
		}
		if !until.IsZero() && fileDate.After(until) {
			return nil, nil
		}
	}

	matches := c.matcher.FromPath(filePath)
	if len(matches) == 0 {
		return nil, nil
	}
	best := matches[0]

	cat := c.categories.Categorize(filename)

	year := strconv.Itoa(time.Now().Year())
	if hasDate {
		year = strconv.Itoa(fileDate.Year())
	}

	var size int64
	if info, err := os.Stat(filePath); err == nil {
		size = info.Size()
	}

	return &FileMatch{
		FilePath:      filePath,
		CompanyName:   best.Company,
		MatchScore:    best.Score,
		MatchedText:   best.MatchedText,
		Category:      cat,
		SuggestedPath: SuggestedPath(best.Company, cat, year, filename, fileDate, hasDate),
		FileDate:      fileDate,
		HasDate:       hasDate,
		FileSize:      size,
	}, nil
}

func (c *Core) moveMatch(fileMatch FileMatch, output string) error {
	year := strconv.Itoa(time.Now().Year())
	if fileMatch.HasDate {
		year = strconv.Itoa(fileMatch.FileDate.Year())
	}
	destDir, err := c.mover.CreateDirectoryStructure(output, fileMatch.CompanyName, year, fileMatch.Category.String())
	if err != nil {
		return err
	}
	_, err = c.mover.Move(fileMatch.FilePath, destDir)
	return err
}

func validateRequest(req Request) error {
	info, err := os.Stat(req.Root)
	if err != nil || !info.IsDir() {
		return services.Wrap(services.ErrValidation, "organize", "validate inputs",
			fmt.Sprintf("Source is not a readable directory: %s", req.Root), err)
	}
	if req.Output == "" {
		return services.Wrap(services.ErrValidation, "organize", "validate inputs",
			"Output directory must be set", nil)
	}
	if !req.Since.IsZero() && !req.Until.IsZero() && req.Since.After(req.Until) {
		return services.Wrap(services.ErrValidation, "organize", "validate inputs",
			"Date range start must not be after its end", nil)
	}
	return nil
}

func notify(progress Progress, phase string, current, total int) {
	if progress != nil {
		progress(phase, current, total)
	}
}

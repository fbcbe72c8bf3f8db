package oplog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"docshelf/internal/fileutil"
	"docshelf/internal/logging"
	"docshelf/internal/services"
)

// UndoResult aggregates the outcome of one undo run. The run always
// completes; per-record failures land in Errors.
type UndoResult struct {
	Undone  int
	Failed  int
	Errors  []string
	Records int
}

// UndoProgress reports undo advancement as (current, total).
type UndoProgress func(current, total int)

// Undo replays an operation log in reverse, restoring the filesystem state
// the log's operations mutated.
type Undo struct {
	simulate bool
	logger   *slog.Logger
}

// NewUndo builds an undo engine. In simulate mode every validation check
// still runs but no filesystem mutation is performed.
func NewUndo(simulate bool, logger *slog.Logger) *Undo {
	return &Undo{
		simulate: simulate,
		logger:   logging.NewComponentLogger(logger, "undo"),
	}
}

// Run loads the log at logPath, keeps only successful records, and
// processes them in reverse file order. Unknown operation types are
// recorded as errors without aborting the run.
func (u *Undo) Run(ctx context.Context, logPath string, progress UndoProgress) (*UndoResult, error) {
	logger := logging.WithContext(ctx, u.logger)

	operations, err := Load(logPath)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "undo", "load log", "Failed to load operation log", err)
	}

	successful := make([]Operation, 0, len(operations))
	for _, op := range operations {
		if op.Success {
			successful = append(successful, op)
		}
	}
	// Reverse file order, not timestamp order: the log is the source of
	// truth for sequencing.
	for i, j := 0, len(successful)-1; i < j; i, j = i+1, j-1 {
		successful[i], successful[j] = successful[j], successful[i]
	}

	result := &UndoResult{Records: len(successful)}
	for i, op := range successful {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if progress != nil {
			progress(i+1, len(successful))
		}
		var undoErr error
		switch op.Type {
		case TypeMove:
			undoErr = u.undoMove(op)
		case TypeCreateDir:
			undoErr = u.undoCreateDir(op, logger)
		default:
			undoErr = fmt.Errorf("unsupported operation type: %s", op.Type)
		}
		if undoErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("undo of %s: %v", op.NewPath, undoErr))
			logger.Warn("undo step failed", logging.String("new_path", op.NewPath), logging.Error(undoErr))
			continue
		}
		result.Undone++
		logger.Info("undo step completed",
			logging.String("operation", string(op.Type)),
			logging.String("new_path", op.NewPath),
			logging.String("original_path", op.OriginalPath),
		)
	}
	return result, nil
}

// undoMove returns a moved file to its original location. Both validation
// checks run even in simulate mode.
func (u *Undo) undoMove(op Operation) error {
	if _, err := os.Stat(op.NewPath); err != nil {
		return fmt.Errorf("moved file no longer exists: %s", op.NewPath)
	}
	if _, err := os.Stat(op.OriginalPath); err == nil {
		return fmt.Errorf("original path already occupied: %s", op.OriginalPath)
	}
	if u.simulate {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(op.OriginalPath), 0o755); err != nil {
		return fmt.Errorf("recreate original directory: %w", err)
	}
	return fileutil.MoveFile(op.NewPath, op.OriginalPath)
}

// undoCreateDir removes a directory the run created, but only when it is
// empty; a non-empty directory is reported and left in place. A directory
// that is already gone counts as undone.
func (u *Undo) undoCreateDir(op Operation, logger *slog.Logger) error {
	entries, err := os.ReadDir(op.NewPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("inspect directory: %w", err)
	}
	if len(entries) > 0 {
		logger.Info("directory not empty, left in place", logging.String("path", op.NewPath))
		return nil
	}
	if u.simulate {
		return nil
	}
	return os.Remove(op.NewPath)
}

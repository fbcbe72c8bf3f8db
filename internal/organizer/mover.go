package organizer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docshelf/internal/fileutil"
	"docshelf/internal/logging"
	"docshelf/internal/oplog"
	"docshelf/internal/services"
	"docshelf/internal/textutil"
)

// maxCollisionAttempts bounds the numeric suffix search. Exhaustion is a
// deliberate hard failure rather than a silent overwrite.
const maxCollisionAttempts = 9999

// Mover performs the physical relocations, resolving name collisions and
// recording every attempt in the operation log.
type Mover struct {
	simulate bool
	oplog    *oplog.Logger
	logger   *slog.Logger
}

// NewMover builds a Mover. A nil operation log disables recording; in
// simulate mode no filesystem mutation happens.
func NewMover(simulate bool, log *oplog.Logger, logger *slog.Logger) *Mover {
	return &Mover{
		simulate: simulate,
		oplog:    log,
		logger:   logging.NewComponentLogger(logger, "mover"),
	}
}

// SetOperationLog attaches (or detaches) the operation log.
func (m *Mover) SetOperationLog(log *oplog.Logger) {
	m.oplog = log
}

// CreateDirectoryStructure builds <base>/<company>/<category>/<year> and,
// unless simulating, creates it on disk, logging the create_dir operation.
func (m *Mover) CreateDirectoryStructure(base, company, year, categoryName string) (string, error) {
	dir := filepath.Join(
		base,
		textutil.SanitizeName(company),
		textutil.SanitizeName(categoryName),
		textutil.SanitizeName(year),
	)
	if m.simulate {
		return dir, nil
	}
	err := os.MkdirAll(dir, 0o755)
	m.record(oplog.Operation{
		Type:         oplog.TypeCreateDir,
		NewPath:      dir,
		Timestamp:    time.Now(),
		Success:      err == nil,
		ErrorMessage: errMessage(err),
	})
	if err != nil {
		return "", fmt.Errorf("create directory structure: %w", err)
	}
	return dir, nil
}

// Move relocates source into destDir, resolving filename collisions with
// numeric suffixes. It fails fast when source does not exist. Every
// attempt, success or failure, lands in the operation log.
func (m *Mover) Move(source, destDir string) (string, error) {
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("source file not found: %s", source)
	}

	finalPath, err := m.resolveCollision(filepath.Join(destDir, filepath.Base(source)))
	if err != nil {
		return "", err
	}

	if !m.simulate {
		err := os.MkdirAll(destDir, 0o755)
		if err == nil {
			err = fileutil.MoveFile(source, finalPath)
		}
		if err != nil {
			moveErr := fmt.Errorf("move %s: %w", source, err)
			m.record(oplog.Operation{
				Type:         oplog.TypeMove,
				OriginalPath: source,
				NewPath:      finalPath,
				Timestamp:    time.Now(),
				Success:      false,
				ErrorMessage: moveErr.Error(),
			})
			return "", moveErr
		}
	}

	m.record(oplog.Operation{
		Type:         oplog.TypeMove,
		OriginalPath: source,
		NewPath:      finalPath,
		Timestamp:    time.Now(),
		Success:      true,
	})
	m.logger.Debug("file moved",
		logging.String("source", source),
		logging.String("destination", finalPath),
		logging.Bool("simulate", m.simulate),
	)
	return finalPath, nil
}

// resolveCollision appends _1, _2, ... before the extension until an unused
// path is found. Collision probing is skipped in simulate mode since
// non-simulated state is not assumed.
func (m *Mover) resolveCollision(target string) (string, error) {
	if m.simulate {
		return target, nil
	}
	if _, err := os.Stat(target); err != nil {
		return target, nil
	}

	dir := filepath.Dir(target)
	base := filepath.Base(target)
	stem := base
	ext := ""
	if idx := strings.LastIndex(base, "."); idx > 0 {
		stem = base[:idx]
		ext = base[idx:]
	}

	for attempt := 1; attempt <= maxCollisionAttempts; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, attempt, ext))
		if _, err := os.Stat(candidate); err != nil {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrTransient, PhaseMove, "resolve collision",
		fmt.Sprintf("Exhausted collision suffixes for %s", target), nil)
}

func (m *Mover) record(op oplog.Operation) {
	if m.oplog == nil {
		return
	}
	m.oplog.Append(op)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

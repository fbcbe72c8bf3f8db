package oplog

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"docshelf/internal/logging"
)

// Type identifies the kind of filesystem mutation a record describes.
type Type string

const (
	TypeMove      Type = "move"
	TypeCopy      Type = "copy"
	TypeCreateDir Type = "create_dir"
)

// Operation is one append-only record. Instances are created the moment an
// operation is attempted and written immediately.
type Operation struct {
	Type         Type
	OriginalPath string
	NewPath      string
	Timestamp    time.Time
	Success      bool
	ErrorMessage string
}

// header is the exact CSV column order; consumers depend on it.
var header = []string{"operation_type", "original_path", "new_path", "timestamp", "success", "error_message"}

// Logger appends operations to a CSV log file, flushing per write. It holds
// a file lock for its lifetime so only one active instance can write a
// given log.
type Logger struct {
	path   string
	file   *os.File
	writer *csv.Writer
	lock   *flock.Flock
	logger *slog.Logger

	operations []Operation
}

// Open creates or appends to the log at path. It refuses to open a log that
// another instance currently holds.
func Open(path string, logger *slog.Logger) (*Logger, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire log lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("operation log %s is in use by another instance", path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open operation log: %w", err)
	}

	l := &Logger{
		path:   path,
		file:   file,
		writer: csv.NewWriter(file),
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "oplog"),
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("stat operation log: %w", err)
	}
	if info.Size() == 0 {
		if err := l.writer.Write(header); err != nil {
			_ = file.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("write log header: %w", err)
		}
		l.writer.Flush()
	}

	return l, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// Append records one operation. Log I/O failures are reported to the
// diagnostic logger but never propagated; logging must not fail the
// operation it annotates.
func (l *Logger) Append(op Operation) {
	l.operations = append(l.operations, op)
	record := []string{
		string(op.Type),
		op.OriginalPath,
		op.NewPath,
		op.Timestamp.Format(time.RFC3339),
		formatBool(op.Success),
		op.ErrorMessage,
	}
	if err := l.writer.Write(record); err != nil {
		l.logger.Warn("failed to write operation record", logging.Error(err), logging.String("log_path", l.path))
		return
	}
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		l.logger.Warn("failed to flush operation record", logging.Error(err), logging.String("log_path", l.path))
		return
	}
	if err := l.file.Sync(); err != nil {
		l.logger.Warn("failed to sync operation log", logging.Error(err), logging.String("log_path", l.path))
	}
}

// Operations returns a copy of every record appended through this Logger.
func (l *Logger) Operations() []Operation {
	out := make([]Operation, len(l.operations))
	copy(out, l.operations)
	return out
}

// Close flushes and releases the log file and its lock.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.writer.Flush()
	err := l.file.Close()
	if unlockErr := l.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}

// Load reads every well-formed record from the log at path. Malformed rows
// are skipped so one bad line cannot poison an undo run.
func Load(path string) ([]Operation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open operation log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read operation log: %w", err)
	}

	var operations []Operation
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == header[0] {
			continue
		}
		if len(record) < len(header) {
			continue
		}
		timestamp, err := time.Parse(time.RFC3339, record[3])
		if err != nil {
			timestamp = time.Time{}
		}
		operations = append(operations, Operation{
			Type:         Type(record[0]),
			OriginalPath: record[1],
			NewPath:      record[2],
			Timestamp:    timestamp,
			Success:      parseBool(record[4]),
			ErrorMessage: record[5],
		})
	}
	return operations, nil
}

// formatBool writes the True/False literals the log format mandates.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func parseBool(s string) bool {
	switch s {
	case "True", "true", "TRUE":
		return true
	default:
		return false
	}
}

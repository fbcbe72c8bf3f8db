// Package logs provides bounded-memory tailing of the docshelf log file.
//
// It reads the last N lines of a log with a fixed-size ring buffer and can
// follow the file for appended lines, resetting cleanly when the file is
// rotated or truncated. Callers supply a context so follow mode shuts down
// when the CLI exits.
package logs

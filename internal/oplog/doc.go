// Package oplog records every filesystem mutation in an append-only CSV
// log and can replay the log in reverse to restore prior state.
//
// The log file is the sole durable owner of operation history: rows are
// flushed as they are written, never mutated, and never deleted. A file
// lock guards against two writers sharing one log.
package oplog

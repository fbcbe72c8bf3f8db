// Package organizer is the engine that classifies loose documents by
// company and relocates them into a deterministic Company/Category/Year
// tree.
//
// A run proceeds in strict sequential phases: scan, analyze (matching,
// date extraction, categorization), then move. Every filesystem mutation
// is appended to the operation log so a run can be reversed. The engine is
// single-threaded; callers wanting a responsive UI run Organize on their
// own goroutine but must not invoke it concurrently against the same
// output tree or log file.
package organizer

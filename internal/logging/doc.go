// Package logging wraps log/slog with the attribute helpers, handler
// selection, and context plumbing used across docshelf.
package logging

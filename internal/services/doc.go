// Package services defines shared error and context utilities consumed by
// the organizer engine and the CLI.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     into the engine's error taxonomy (validation, configuration,
//     not-found, transient).
//   - Context helpers that stamp run identifiers and phase names for
//     logging correlation.
package services

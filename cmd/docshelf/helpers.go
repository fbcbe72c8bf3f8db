package main

import (
	"log/slog"

	"docshelf/internal/config"
	"docshelf/internal/match"
	"docshelf/internal/organizer"
)

// newMatcherFromConfig builds the same matcher the organize engine uses,
// for inspection commands that never touch the filesystem.
func newMatcherFromConfig(cfg *config.Config, logger *slog.Logger) *match.Matcher {
	return organizer.New(cfg, true, logger).Matcher()
}

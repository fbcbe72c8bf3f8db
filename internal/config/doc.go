// Package config loads, validates, and defaults the docshelf TOML
// configuration: paths, matching settings, scan filters, logging, run
// history, and the company definitions consumed by the matcher.
package config

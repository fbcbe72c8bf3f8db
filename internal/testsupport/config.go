// Package testsupport provides shared fixtures for docshelf tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"docshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// WithThreshold overrides the matching threshold on the test config.
func WithThreshold(threshold float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.MinThreshold = threshold
	}
}

// WithCompanies replaces the test config's company definitions.
func WithCompanies(companies ...config.Company) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Companies = companies
	}
}

// NewConfig produces a config seeded with unique temp directories per test
// and a default test company. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "organized")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OperationLog = filepath.Join(base, "logs", "operations.csv")
	cfg.History.Path = filepath.Join(base, "logs", "history.db")
	cfg.Companies = []config.Company{
		{
			Name:    "ACME Corporation",
			Aliases: []string{"acme"},
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

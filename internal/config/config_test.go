package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docshelf/internal/services"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("missing file must not be reported as existing")
	}
	if cfg.Matching.MinThreshold != 92 {
		t.Errorf("default threshold = %v, want 92", cfg.Matching.MinThreshold)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
	if !cfg.History.Enabled {
		t.Error("history should default to enabled")
	}
	if cfg.Paths.OperationLog != filepath.Join(cfg.Paths.LogDir, "operations.csv") {
		t.Errorf("operation log should default under the log dir, got %s", cfg.Paths.OperationLog)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[matching]
min_threshold = 88.5

[logging]
format = "JSON"
level = "Debug"

[[companies]]
name = "Area Finanza S.p.A."
aliases = ["area finanza"]
required_keywords = ["finanza"]
excluded_standalone = ["area"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Matching.MinThreshold != 88.5 {
		t.Errorf("threshold = %v", cfg.Matching.MinThreshold)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging values should be lower-cased: %+v", cfg.Logging)
	}
	if len(cfg.Companies) != 1 || cfg.Companies[0].Name != "Area Finanza S.p.A." {
		t.Errorf("companies = %+v", cfg.Companies)
	}
	if cfg.Companies[0].RequiredKeywords[0] != "finanza" {
		t.Errorf("required keywords = %v", cfg.Companies[0].RequiredKeywords)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "threshold above 100", mutate: func(c *Config) { c.Matching.MinThreshold = 150 }},
		{name: "negative bonus", mutate: func(c *Config) { c.Matching.FilenameBonus = -1 }},
		{name: "negative penalty", mutate: func(c *Config) { c.Matching.PathPenalty = -1 }},
		{name: "negative size cap", mutate: func(c *Config) { c.Scanner.MaxFileSizeMB = -1 }},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "company without name", mutate: func(c *Config) { c.Companies = []Company{{Name: "  "}} }},
		{name: "duplicate company", mutate: func(c *Config) {
			c.Companies = []Company{{Name: "Acme"}, {Name: "Acme"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadTagsValidationErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[matching]
min_threshold = 150.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("err = %v, want wrapped services.ErrConfiguration", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandPath("~/docs")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "docs") {
		t.Errorf("ExpandPath(~/docs) = %q", got)
	}

	got, err = ExpandPath("relative/dir")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expanded path should be absolute, got %q", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := WriteSample(path); err != nil {
		t.Fatal(err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("WriteSample must refuse to clobber an existing file")
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist after WriteSample")
	}
	if len(cfg.Companies) == 0 {
		t.Error("sample config should declare an example company")
	}
	if !strings.Contains(SampleConfig(), "min_threshold") {
		t.Error("sample config should document the matching threshold")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.OutputDir = filepath.Join(dir, "out")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.Paths.LogDir); err != nil {
		t.Error("log dir should be created")
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); err != nil {
		t.Error("output dir should be created")
	}
}

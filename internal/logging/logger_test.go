package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docshelf/internal/services"
	"docshelf/internal/testsupport"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hello", String("key", "value"))

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"key":"value"`) {
		t.Errorf("log output = %s", raw)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format should error")
	}
}

func TestNewFromConfigMirrorsToLogDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	logger, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("mirrored")

	mirror := filepath.Join(cfg.Paths.LogDir, "docshelf.log")
	raw, err := os.ReadFile(mirror)
	if err != nil {
		t.Fatalf("mirror log missing: %v", err)
	}
	if !strings.Contains(string(raw), "mirrored") {
		t.Errorf("mirror log = %s", raw)
	}
}

func TestWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithPhase(ctx, "move")
	WithContext(ctx, logger).Info("annotated")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)
	if !strings.Contains(out, "run-42") || !strings.Contains(out, "move") {
		t.Errorf("context fields missing: %s", out)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must report everything as disabled.
	logger.Info("dropped")
	if logger.Enabled(context.Background(), 0) {
		t.Error("noop logger should be disabled at every level")
	}
}

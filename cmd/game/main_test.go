package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Night-Chase/internal/config"
	"github.com/Garsondee/Night-Chase/internal/level"
)

func TestLoad_DefaultsWhenNoPaths(t *testing.T) {
	cfg, lvl, err := load("", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title == "" || lvl == nil || len(lvl.Boxes) == 0 {
		t.Fatalf("defaults not loaded: %+v", cfg.Window)
	}
}

func TestLoad_ReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("movement:\n  speed: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := load(bad, ""); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("bad config: %v", err)
	}

	badLevel := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(badLevel, []byte("boxes:\n  - name: a\n    min: [0, 0, 0]\n    max: [0, 0, 0]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := load("", badLevel); !errors.Is(err, level.ErrInvalid) {
		t.Fatalf("bad level: %v", err)
	}
	if _, _, err := load(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Fatal("missing config file should fail")
	}
}

func TestRun_ReturnsLoadErrorsInsteadOfExiting(t *testing.T) {
	err := run(options{configPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("run with a missing config should fail")
	}
}

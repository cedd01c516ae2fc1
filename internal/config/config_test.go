package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"whilelang/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "whilelang.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"log: log",
		"format: yaml",
		"strict: true",
		"compound_scope: current",
		"max_steps: 5000",
		"eager_bindings: true",
	}, "\n"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := config.Default()
	want.Log = "log"
	want.Format = "yaml"
	want.Strict = true
	want.CompoundScope = "current"
	want.MaxSteps = 5000
	want.EagerBindings = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}

	if !cfg.Debug() {
		t.Error("Expected debug to be enabled")
	}
	if n := len(cfg.InterpreterOptions()); n != 5 {
		t.Errorf("Expected 5 interpreter options, got %d", n)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithoutPath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.MaxDepth != 10000 {
		t.Errorf("Expected default max depth, got %d", cfg.MaxDepth)
	}

	if err := os.WriteFile(config.DefaultPath, []byte("reject_redefinition: true\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err = config.Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cfg.ParserOptions()) != 1 {
		t.Error("Expected the default file to be read")
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour: false"},
		{"bad log", "log: verbose"},
		{"bad format", "format: json"},
		{"bad scope", "compound_scope: outer"},
		{"negative depth", "max_depth: -1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, test.content)); err == nil {
				t.Errorf("Expected %q to be rejected", test.content)
			}
		})
	}

	_, err := config.Load(writeConfig(t, "format: json\nmax_steps: -3"))
	var verr *config.ValidationError
	if !errors.As(err, &verr) || len(verr.Issues) != 2 {
		t.Errorf("Expected 2 validation issues, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

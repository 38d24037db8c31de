package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingAllowed(t *testing.T) {
	configuration, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	if err != nil {
		t.Fatalf("missing config with allowMissing must not fail: %v", err)
	}
	if configuration.Catalog.Path != "" {
		t.Fatalf("expected zero config, got %+v", configuration)
	}
}

func TestLoadMissingRejected(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false); err == nil {
		t.Fatalf("expected error for missing config")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load("  ", true); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
catalog:
  path: "  mods.csv  "
build:
  cache_dir: .packforge/cache
  output_dir: dist
  pack_name: testpack
  game_version: "1.21.8"
readme:
  output_path: README.md
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	configuration, err := Load(path, false)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if configuration.Catalog.Path != "mods.csv" {
		t.Fatalf("catalog path not trimmed: %q", configuration.Catalog.Path)
	}
	if configuration.Build.GameVersion != "1.21.8" {
		t.Fatalf("unexpected game version: %q", configuration.Build.GameVersion)
	}
	if configuration.Readme.OutputPath != "README.md" {
		t.Fatalf("unexpected readme path: %q", configuration.Readme.OutputPath)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	configuration, err := Load(path, false)
	if err != nil {
		t.Fatalf("empty file must load as zero config: %v", err)
	}
	if configuration.Build.CacheDir != "" {
		t.Fatalf("expected zero config")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("catalog: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, false); err == nil {
		t.Fatalf("expected parse error")
	}
}

package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/packforge/packforge/core/release"
)

func buildTree(t *testing.T, relatives ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, relative := range relatives {
		full := filepath.Join(root, filepath.FromSlash(relative))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("content:"+relative), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestAssembleExcludesInternalArtifacts(t *testing.T) {
	root := buildTree(t,
		"mods/fabric-api-1.jar",
		"mods/optional/sodium-1.jar",
		"expected-release-files.txt",
		"verification-missing.txt",
		"reconcile-2024/verification-missing.txt",
	)
	outputPath := filepath.Join(t.TempDir(), "release.zip")

	result, err := Assemble(Options{TreeRoot: root, OutputPath: outputPath})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if result.Entries != 2 {
		t.Fatalf("expected 2 entries, got %d", result.Entries)
	}

	names, err := release.ListZip(outputPath)
	if err != nil {
		t.Fatalf("list zip: %v", err)
	}
	for _, name := range names {
		if release.IsInternalArtifact(name) {
			t.Fatalf("archive must never contain internal artifact %s", name)
		}
	}
	if len(names) != 2 || names[0] != "mods/fabric-api-1.jar" || names[1] != "mods/optional/sodium-1.jar" {
		t.Fatalf("unexpected archive contents: %v", names)
	}
}

func TestAssembleIncludesMetadata(t *testing.T) {
	root := buildTree(t, "mods/fabric-api-1.jar")
	outputPath := filepath.Join(t.TempDir(), "release.zip")

	_, err := Assemble(Options{
		TreeRoot:   root,
		OutputPath: outputPath,
		Metadata: map[string][]byte{
			release.ManifestFileName: []byte(`{"schema_id":"packforge.release.manifest"}`),
			release.ReadmeFileName:   []byte("# Pack\n"),
		},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	names, err := release.ListZip(outputPath)
	if err != nil {
		t.Fatalf("list zip: %v", err)
	}
	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	if !found[release.ManifestFileName] || !found[release.ReadmeFileName] {
		t.Fatalf("metadata entries missing: %v", names)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	root := buildTree(t, "mods/fabric-api-1.jar", "mods/optional/sodium-1.jar")
	firstPath := filepath.Join(t.TempDir(), "first.zip")
	secondPath := filepath.Join(t.TempDir(), "second.zip")

	if _, err := Assemble(Options{TreeRoot: root, OutputPath: firstPath}); err != nil {
		t.Fatalf("first assemble: %v", err)
	}
	if _, err := Assemble(Options{TreeRoot: root, OutputPath: secondPath}); err != nil {
		t.Fatalf("second assemble: %v", err)
	}

	firstBytes, err := os.ReadFile(firstPath)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	secondBytes, err := os.ReadFile(secondPath)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if string(firstBytes) != string(secondBytes) {
		t.Fatalf("same tree must produce identical archive bytes")
	}
}

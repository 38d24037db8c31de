package release

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestListTreeRelativeSortedPaths(t *testing.T) {
	root := t.TempDir()
	for _, relative := range []string{
		"mods/server/paper-1.jar",
		"mods/fabric-api-1.jar",
		"mods/optional/sodium-1.jar",
	} {
		full := filepath.Join(root, filepath.FromSlash(relative))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	paths, err := ListTree(root)
	if err != nil {
		t.Fatalf("list tree: %v", err)
	}
	want := []string{
		"mods/fabric-api-1.jar",
		"mods/optional/sodium-1.jar",
		"mods/server/paper-1.jar",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for index := range want {
		if paths[index] != want[index] {
			t.Fatalf("paths[%d] = %s, want %s", index, paths[index], want[index])
		}
	}
}

func TestListTreeMissingRoot(t *testing.T) {
	paths, err := ListTree(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing root should yield empty listing: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %v", paths)
	}
}

func TestListZip(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "release.zip")
	file, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	writer := zip.NewWriter(file)
	for _, name := range []string{"mods/fabric-api-1.jar", "release-manifest.json"} {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := entry.Write([]byte("x")); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	paths, err := ListZip(archivePath)
	if err != nil {
		t.Fatalf("list zip: %v", err)
	}
	if len(paths) != 2 || paths[0] != "mods/fabric-api-1.jar" || paths[1] != "release-manifest.json" {
		t.Fatalf("unexpected listing: %v", paths)
	}
}

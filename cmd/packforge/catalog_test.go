package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/packforge/packforge/core/catalog"
)

func TestCatalogValidateCLI(t *testing.T) {
	catalogPath, _ := releaseFixture(t)

	if code := run([]string{"packforge", "catalog", "validate", "--catalog", catalogPath}); code != exitOK {
		t.Fatalf("validate clean catalog: expected %d got %d", exitOK, code)
	}

	content, err := os.ReadFile(catalogPath) // #nosec G304
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	tampered := []byte(string(content[:len(content)-10]) + "0000000000")
	if err := os.WriteFile(catalogPath, tampered, 0o600); err != nil {
		t.Fatalf("tamper catalog: %v", err)
	}
	if code := run([]string{"packforge", "catalog", "validate", "--catalog", catalogPath}); code != exitInvalidInput {
		t.Fatalf("validate tampered catalog: expected %d got %d", exitInvalidInput, code)
	}
}

func TestCatalogListIncludesBlockedRows(t *testing.T) {
	workDir := t.TempDir()
	catalogPath := filepath.Join(workDir, "catalog.csv")
	blocked := testRecord("optifine", "OptiFine", "optifine-1.jar")
	blocked.Group = catalog.GroupBlock
	writeReleaseCatalog(t, catalogPath, []catalog.Record{
		testRecord("fabric-api", "Fabric API", "fabric-api-1.jar"),
		blocked,
	})

	if code := run([]string{"packforge", "catalog", "list", "--catalog", catalogPath, "--json"}); code != exitOK {
		t.Fatalf("list: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"packforge", "catalog", "get", "optifine", "--catalog", catalogPath}); code != exitOK {
		t.Fatalf("get blocked record: expected %d got %d", exitOK, code)
	}
}

func TestCatalogGetUnknownRecord(t *testing.T) {
	catalogPath, _ := releaseFixture(t)
	if code := run([]string{"packforge", "catalog", "get", "nope", "--catalog", catalogPath}); code != exitInvalidInput {
		t.Fatalf("get unknown record: expected %d got %d", exitInvalidInput, code)
	}
	if code := run([]string{"packforge", "catalog", "get", "--catalog", catalogPath}); code != exitInvalidInput {
		t.Fatalf("get without id: expected %d got %d", exitInvalidInput, code)
	}
}

// Package testutil holds helpers shared by the end-to-end CLI tests.
package testutil

import (
	"encoding/csv"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/packforge/packforge/core/catalog"
)

func RepoRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("unable to locate testutil source file")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

func BuildPackforgeBinary(t *testing.T, root string) string {
	t.Helper()
	binDir := t.TempDir()
	binName := "packforge"
	if runtime.GOOS == "windows" {
		binName = "packforge.exe"
	}
	binPath := filepath.Join(binDir, binName)

	// #nosec G204 -- arguments are fixed and used only in test binaries.
	build := exec.Command("go", "build", "-o", binPath, "./cmd/packforge")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build packforge binary: %v\n%s", err, string(out))
	}
	return binPath
}

func CommandExitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected command exit error, got: %v", err)
	}
	return exitErr.ExitCode()
}

func WriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("create parent directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCatalogCSV computes each record's integrity hash and writes the rows
// as a catalog file the CLI accepts.
func WriteCatalogCSV(t *testing.T, path string, records []catalog.Record) {
	t.Helper()
	for index := range records {
		hash, err := catalog.ComputeHash(records[index])
		if err != nil {
			t.Fatalf("compute integrity hash: %v", err)
		}
		records[index].IntegrityHash = hash
	}

	file, err := os.Create(path) // #nosec G304
	if err != nil {
		t.Fatalf("create catalog %s: %v", path, err)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(catalog.Columns); err != nil {
		t.Fatalf("write catalog header: %v", err)
	}
	for _, record := range records {
		if err := writer.Write(catalog.Row(record)); err != nil {
			t.Fatalf("write catalog row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush catalog: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close catalog: %v", err)
	}
}

package catalog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCatalogCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create catalog file: %v", err)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close catalog file: %v", err)
	}
	return path
}

func TestLoadHappyPath(t *testing.T) {
	first := hashedRecord(t, sampleRecord())
	second := sampleRecord()
	second.ID = "sodium"
	second.Name = "Sodium"
	second.Group = GroupOptional
	second.ArtifactFilename = "sodium-1.jar"
	second = hashedRecord(t, second)

	path := writeCatalogCSV(t, [][]string{Row(first), Row(second)})
	snapshot, rowErrors, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrors)
	}
	if snapshot.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", snapshot.Len())
	}
	record, ok := snapshot.Lookup("sodium")
	if !ok {
		t.Fatalf("lookup sodium failed")
	}
	if record.ArtifactFilename != "sodium-1.jar" {
		t.Fatalf("unexpected artifact: %s", record.ArtifactFilename)
	}
}

func TestLoadReportsAllCorruptRows(t *testing.T) {
	good := hashedRecord(t, sampleRecord())

	tampered := sampleRecord()
	tampered.ID = "tampered"
	tampered = hashedRecord(t, tampered)
	tampered.Name = "Edited Without Rehash"

	badEnum := Row(hashedRecord(t, sampleRecord()))
	badEnum[0] = "mandatory"
	badEnum[2] = "bad-enum"

	malformedHash := sampleRecord()
	malformedHash.ID = "malformed"
	malformedHashRow := Row(malformedHash)
	malformedHashRow[10] = "nothex"

	path := writeCatalogCSV(t, [][]string{Row(good), Row(tampered), badEnum, malformedHashRow})
	snapshot, rowErrors, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rowErrors) != 3 {
		t.Fatalf("expected 3 row errors, got %d: %v", len(rowErrors), rowErrors)
	}
	if snapshot.Len() != 1 {
		t.Fatalf("only the good row should survive, got %d", snapshot.Len())
	}
	seen := map[string]bool{}
	for _, rowError := range rowErrors {
		seen[rowError.RecordID] = true
	}
	if !seen["tampered"] || !seen["bad-enum"] || !seen["malformed"] {
		t.Fatalf("missing expected row errors: %v", rowErrors)
	}
}

func TestLoadRejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := strings.Replace(strings.Join(Columns, ","), "group", "category", 1) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatalf("expected header error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	record := hashedRecord(t, sampleRecord())
	if _, err := NewCatalog([]Record{record, record}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestRecordsIncludesBlockedRows(t *testing.T) {
	blocked := sampleRecord()
	blocked.ID = "blocked-mod"
	blocked.Group = GroupBlock
	blocked = hashedRecord(t, blocked)

	snapshot, err := NewCatalog([]Record{hashedRecord(t, sampleRecord()), blocked})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	found := false
	for _, record := range snapshot.Records() {
		if record.ID == "blocked-mod" {
			found = true
		}
	}
	if !found {
		t.Fatalf("blocked rows must stay visible in listings")
	}
}

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Columns is the stable column order of the CSV record store.
var Columns = []string{
	"group",
	"kind",
	"id",
	"name",
	"description",
	"version",
	"artifact_filename",
	"client_support",
	"server_support",
	"game_version",
	"integrity_hash",
}

// Load reads the whole record store before a build begins. Structural
// problems (unreadable file, malformed CSV, wrong header) fail outright.
// Per-row problems are collected so one load surfaces every corrupt row at
// once; rows with errors are excluded from the returned snapshot.
func Load(path string) (*Catalog, []RowError, error) {
	// #nosec G304 -- catalog path is explicit local user input.
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog header: %w", err)
	}
	for index, column := range Columns {
		if header[index] != column {
			return nil, nil, fmt.Errorf("catalog header column %d: want %q, got %q", index, column, header[index])
		}
	}

	var records []Record
	var rowErrors []RowError
	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Err: err})
			continue
		}
		record, parseErr := recordFromRow(fields)
		if parseErr != nil {
			rowErrors = append(rowErrors, RowError{Line: line, RecordID: fields[2], Err: parseErr})
			continue
		}
		if validateErr := Validate(record); validateErr != nil {
			rowErrors = append(rowErrors, RowError{Line: line, RecordID: record.ID, Err: validateErr})
			continue
		}
		records = append(records, record)
	}

	snapshot, err := NewCatalog(records)
	if err != nil {
		return nil, rowErrors, err
	}
	return snapshot, rowErrors, nil
}

func recordFromRow(fields []string) (Record, error) {
	group, err := ParseGroup(fields[0])
	if err != nil {
		return Record{}, err
	}
	kind, err := ParseKind(fields[1])
	if err != nil {
		return Record{}, err
	}
	clientSupport, err := ParseSupport(fields[7])
	if err != nil {
		return Record{}, fmt.Errorf("client_support: %w", err)
	}
	serverSupport, err := ParseSupport(fields[8])
	if err != nil {
		return Record{}, fmt.Errorf("server_support: %w", err)
	}
	return Record{
		Group:            group,
		Kind:             kind,
		ID:               fields[2],
		Name:             fields[3],
		Description:      fields[4],
		Version:          fields[5],
		ArtifactFilename: fields[6],
		ClientSupport:    clientSupport,
		ServerSupport:    serverSupport,
		GameVersion:      fields[9],
		IntegrityHash:    fields[10],
	}, nil
}

// Row serializes a record in the store's column order. Used by tests and by
// external record-editing tooling; the release engine itself never writes
// the catalog.
func Row(record Record) []string {
	return []string{
		string(record.Group),
		string(record.Kind),
		record.ID,
		record.Name,
		record.Description,
		record.Version,
		record.ArtifactFilename,
		string(record.ClientSupport),
		string(record.ServerSupport),
		record.GameVersion,
		record.IntegrityHash,
	}
}

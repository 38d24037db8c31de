package catalog

import (
	"fmt"
	"strings"

	coreerrors "github.com/packforge/packforge/core/errors"
)

const hashHexLength = 64

// Validate checks a record's self-consistency: non-empty identifiers, a
// well-formed integrity hash, and a hash that matches the current field
// values. A mismatch means the row is corrupted, not merely stale.
func Validate(record Record) error {
	if strings.TrimSpace(record.ID) == "" {
		return coreerrors.Wrap(fmt.Errorf("record id must not be empty"),
			coreerrors.CategoryInvalidInput, "empty_id", "fill in the id column", false)
	}
	if strings.TrimSpace(record.Name) == "" {
		return coreerrors.Wrap(fmt.Errorf("record %s: name must not be empty", record.ID),
			coreerrors.CategoryInvalidInput, "empty_name", "fill in the name column", false)
	}
	if !isLowercaseHex(record.IntegrityHash) {
		return corruptRecordError(record.ID, fmt.Sprintf("integrity hash must be %d lowercase hex characters", hashHexLength))
	}
	computed, err := ComputeHash(record)
	if err != nil {
		return coreerrors.Wrap(fmt.Errorf("record %s: %w", record.ID, err),
			coreerrors.CategoryInternalFailure, "hash_failed", "", false)
	}
	if computed != record.IntegrityHash {
		return corruptRecordError(record.ID, "stored integrity hash does not match field values")
	}
	return nil
}

func corruptRecordError(recordID, reason string) error {
	return coreerrors.Wrap(fmt.Errorf("record %s: %s", recordID, reason),
		coreerrors.CategoryCorruptRecord, "corrupt_record",
		"the row was edited without recomputing its hash, or the store is damaged", false)
}

func isLowercaseHex(value string) bool {
	if len(value) != hashHexLength {
		return false
	}
	for _, ch := range value {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') {
			return false
		}
	}
	return true
}

// RowError ties a per-row failure to its position in the store.
type RowError struct {
	Line     int
	RecordID string
	Err      error
}

func (e RowError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.RecordID, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

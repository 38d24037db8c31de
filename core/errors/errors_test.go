package errors

import (
	"fmt"
	"testing"
)

func TestWrapNilCause(t *testing.T) {
	if err := Wrap(nil, CategoryInternalFailure, "code", "hint", false); err != nil {
		t.Fatalf("expected nil for nil cause, got %v", err)
	}
}

func TestWrapCarriesClassification(t *testing.T) {
	cause := fmt.Errorf("catalog row 4: hash mismatch")
	err := Wrap(cause, CategoryCorruptRecord, "corrupt_record", "re-resolve the row to refresh its hash", false)
	if err == nil {
		t.Fatalf("expected wrapped error")
	}
	if err.Error() != cause.Error() {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if CategoryOf(err) != CategoryCorruptRecord {
		t.Fatalf("unexpected category: %s", CategoryOf(err))
	}
	if CodeOf(err) != "corrupt_record" {
		t.Fatalf("unexpected code: %s", CodeOf(err))
	}
	if HintOf(err) != "re-resolve the row to refresh its hash" {
		t.Fatalf("unexpected hint: %s", HintOf(err))
	}
	if RetryableOf(err) {
		t.Fatalf("expected non-retryable")
	}
}

func TestWrappedErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, CategoryIOFailure, "copy_failed", "", true)
	if !RetryableOf(err) {
		t.Fatalf("expected retryable")
	}
	wrapped := fmt.Errorf("outer: %w", err)
	if CategoryOf(wrapped) != CategoryIOFailure {
		t.Fatalf("classification should survive wrapping, got %q", CategoryOf(wrapped))
	}
}

func TestClassifiersOnPlainError(t *testing.T) {
	plain := fmt.Errorf("plain")
	if CategoryOf(plain) != "" || CodeOf(plain) != "" || HintOf(plain) != "" || RetryableOf(plain) {
		t.Fatalf("plain errors must report empty classification")
	}
}

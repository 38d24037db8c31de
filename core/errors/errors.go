package errors

import "errors"

type Category string

const (
	CategoryInvalidInput         Category = "invalid_input"
	CategoryCorruptRecord        Category = "corrupt_record"
	CategoryDuplicateDestination Category = "duplicate_destination"
	CategoryArtifactMissing      Category = "source_artifact_missing"
	CategoryVerification         Category = "verification_mismatch"
	CategoryIOFailure            Category = "io_failure"
	CategoryInternalFailure      Category = "internal_failure"
)

type classifiedError struct {
	category  Category
	code      string
	hint      string
	retryable bool
	cause     error
}

func (e *classifiedError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

// Wrap attaches a category, stable code, and operator hint to a cause.
// A nil cause returns nil so call sites can wrap unconditionally.
func Wrap(cause error, category Category, code, hint string, retryable bool) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{
		category:  category,
		code:      code,
		hint:      hint,
		retryable: retryable,
		cause:     cause,
	}
}

func CategoryOf(err error) Category {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}

func CodeOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.code
	}
	return ""
}

func HintOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.hint
	}
	return ""
}

func RetryableOf(err error) bool {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.retryable
	}
	return false
}

package main

import (
	"encoding/json"
	"fmt"

	coreerrors "github.com/packforge/packforge/core/errors"
)

func writeExplain(text string) int {
	fmt.Println(text)
	return exitOK
}

// writeJSONOutput prints one JSON object per invocation, filling in the
// error envelope fields (code, category, retryable, hint) when the payload
// carries an error message.
func writeJSONOutput(output any, exitCode int) int {
	encoded, err := json.Marshal(output)
	if err != nil {
		fmt.Println(`{"ok":false,"error":"failed to encode output","error_code":"encode_failed","error_category":"internal_failure","retryable":false}`)
		return exitInternalFailure
	}
	var envelope map[string]any
	if err := json.Unmarshal(encoded, &envelope); err != nil {
		fmt.Println(string(encoded))
		return exitCode
	}
	if message, _ := envelope["error"].(string); message != "" {
		if _, exists := envelope["error_code"]; !exists {
			envelope["error_code"] = defaultErrorCode(exitCode)
		}
		if _, exists := envelope["error_category"]; !exists {
			envelope["error_category"] = string(defaultErrorCategory(exitCode))
		}
		if _, exists := envelope["retryable"]; !exists {
			envelope["retryable"] = false
		}
	}
	final, err := json.Marshal(envelope)
	if err != nil {
		return exitInternalFailure
	}
	fmt.Println(string(final))
	return exitCode
}

func exitCodeForError(err error, fallbackExit int) int {
	if err == nil {
		return exitOK
	}
	switch coreerrors.CategoryOf(err) {
	case coreerrors.CategoryInvalidInput, coreerrors.CategoryCorruptRecord, coreerrors.CategoryDuplicateDestination:
		return exitInvalidInput
	case coreerrors.CategoryVerification:
		return exitVerifyFailed
	case coreerrors.CategoryArtifactMissing:
		return exitMissingDependency
	case coreerrors.CategoryIOFailure, coreerrors.CategoryInternalFailure:
		return exitInternalFailure
	}
	return fallbackExit
}

func defaultErrorCode(exitCode int) string {
	switch exitCode {
	case exitInvalidInput:
		return "invalid_input"
	case exitVerifyFailed:
		return "verification_mismatch"
	case exitMissingDependency:
		return "source_artifact_missing"
	default:
		return "internal_failure"
	}
}

func defaultErrorCategory(exitCode int) coreerrors.Category {
	switch exitCode {
	case exitInvalidInput:
		return coreerrors.CategoryInvalidInput
	case exitVerifyFailed:
		return coreerrors.CategoryVerification
	case exitMissingDependency:
		return coreerrors.CategoryArtifactMissing
	default:
		return coreerrors.CategoryInternalFailure
	}
}

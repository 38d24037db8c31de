package release

import (
	"fmt"
	"sort"

	coreerrors "github.com/packforge/packforge/core/errors"
	"github.com/packforge/packforge/core/placement"
)

// VerificationResult is the expected-vs-actual diff for one build. It is
// computed once per release and only lives in that build's diagnostics; a
// non-empty result blocks packaging.
type VerificationResult struct {
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
}

func (r VerificationResult) Empty() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Err returns the packaging-blocking failure for a non-empty diff.
func (r VerificationResult) Err() error {
	if r.Empty() {
		return nil
	}
	return coreerrors.Wrap(
		fmt.Errorf("release tree does not match expected set: %d missing, %d extra", len(r.Missing), len(r.Extra)),
		coreerrors.CategoryVerification, "verification_mismatch",
		"missing files mean a failed placement; extra files mean a stale tree or a placement rule gap", false)
}

// Verify diffs the expected set against the actual file listing of the
// realized tree (or an assembled archive). Internal diagnostic artifacts
// and reconcile scratch directories never count as extra; everything else
// unexpected does.
func Verify(expected []placement.ExpectedFileEntry, actualPaths []string) VerificationResult {
	expectedSet := make(map[string]struct{}, len(expected))
	for _, entry := range expected {
		expectedSet[entry.RelativePath] = struct{}{}
	}
	actualSet := make(map[string]struct{}, len(actualPaths))
	for _, actual := range actualPaths {
		actualSet[actual] = struct{}{}
	}

	result := VerificationResult{}
	for _, entry := range expected {
		if _, ok := actualSet[entry.RelativePath]; !ok {
			result.Missing = append(result.Missing, entry.RelativePath)
		}
	}
	for actual := range actualSet {
		if _, ok := expectedSet[actual]; ok {
			continue
		}
		if IsInternalArtifact(actual) {
			continue
		}
		result.Extra = append(result.Extra, actual)
	}
	sort.Strings(result.Missing)
	sort.Strings(result.Extra)
	return result
}

// FindInternalArtifacts returns every path that must never ship inside an
// assembled archive. The verifier tolerates these next to the working tree;
// an archive containing one is a failed build.
func FindInternalArtifacts(paths []string) []string {
	var polluted []string
	for _, candidate := range paths {
		if IsInternalArtifact(candidate) {
			polluted = append(polluted, candidate)
		}
	}
	sort.Strings(polluted)
	return polluted
}

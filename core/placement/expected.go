package placement

import (
	"fmt"
	"sort"

	"github.com/packforge/packforge/core/catalog"
	coreerrors "github.com/packforge/packforge/core/errors"
)

// ExpectedFileEntry is one conflict-free destination in the expected set.
type ExpectedFileEntry struct {
	RelativePath string  `json:"relative_path"`
	RecordID     string  `json:"record_id"`
	Subtree      Subtree `json:"-"`
}

// BuildExpectedSet applies the resolver to every catalog record and returns
// the complete expected file set for a version, sorted by path. Two records
// resolving to the same relative path is a build-blocking configuration
// error, never silently resolved by last-write-wins.
func BuildExpectedSet(cat *catalog.Catalog, targetVersion string) ([]ExpectedFileEntry, error) {
	ownerByPath := make(map[string]string)
	entries := make([]ExpectedFileEntry, 0, cat.Len())
	for _, record := range cat.Records() {
		resolved, ok := Resolve(record, targetVersion)
		if !ok {
			continue
		}
		if previousOwner, exists := ownerByPath[resolved.RelativePath]; exists {
			return nil, coreerrors.Wrap(
				fmt.Errorf("records %s and %s both resolve to %s", previousOwner, record.ID, resolved.RelativePath),
				coreerrors.CategoryDuplicateDestination, "duplicate_destination",
				"rename one artifact or block one of the rows", false)
		}
		ownerByPath[resolved.RelativePath] = record.ID
		entries = append(entries, ExpectedFileEntry{
			RelativePath: resolved.RelativePath,
			RecordID:     record.ID,
			Subtree:      resolved.Subtree,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	return entries, nil
}

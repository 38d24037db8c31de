package manifest

import (
	"sort"

	"github.com/packforge/packforge/core/catalog"
	"github.com/packforge/packforge/core/placement"
)

// ReadmeRow is one line of the README manifest table. Category comes from
// the resolved placement subtree (root/optional/server), not from the raw
// group column.
type ReadmeRow struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// BuildReadmeRows derives one combined table (not split by group) for every
// record that places into the target release, sorted by name then id.
func BuildReadmeRows(cat *catalog.Catalog, targetVersion string) []ReadmeRow {
	rows := make([]ReadmeRow, 0, cat.Len())
	for _, record := range cat.Records() {
		resolved, ok := placement.Resolve(record, targetVersion)
		if !ok {
			continue
		}
		rows = append(rows, ReadmeRow{
			Name:        record.Name,
			ID:          record.ID,
			Version:     record.Version,
			Description: record.Description,
			Category:    resolved.Subtree.Category(),
			Type:        string(record.Kind),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

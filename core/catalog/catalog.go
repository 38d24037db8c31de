package catalog

import (
	"fmt"
	"sort"
)

// Catalog is an immutable snapshot of the record store, loaded once per
// build invocation. The release engine reads it and never mutates rows, so
// concurrent builds in one process each work against their own snapshot.
type Catalog struct {
	records []Record
	byID    map[string]int
}

func NewCatalog(records []Record) (*Catalog, error) {
	byID := make(map[string]int, len(records))
	copied := make([]Record, len(records))
	copy(copied, records)
	for index, record := range copied {
		if _, exists := byID[record.ID]; exists {
			return nil, fmt.Errorf("duplicate record id: %s", record.ID)
		}
		byID[record.ID] = index
	}
	return &Catalog{records: copied, byID: byID}, nil
}

// Records returns all rows sorted by id, blocked entries included. Catalog
// visibility and release placement are separate predicates: a blocked row
// still shows up in listings even though it never ships.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Lookup(id string) (Record, bool) {
	index, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[index], true
}

func (c *Catalog) Len() int {
	return len(c.records)
}

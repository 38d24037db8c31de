// Package placement decides where each catalog record lands inside a
// release tree, and builds the complete expected file set for a version.
package placement

import (
	"path"

	"github.com/packforge/packforge/core/catalog"
)

// Subtree is a destination directory beneath the release root.
type Subtree string

const (
	SubtreeRoot     Subtree = "mods"
	SubtreeOptional Subtree = "mods/optional"
	SubtreeServer   Subtree = "mods/server"
)

// Category is the client-facing name of a subtree, used by the README
// manifest. It derives from the resolved placement, not from the raw group.
func (s Subtree) Category() string {
	switch s {
	case SubtreeOptional:
		return "optional"
	case SubtreeServer:
		return "server"
	default:
		return "root"
	}
}

// Placement is the resolved destination of one record.
type Placement struct {
	RelativePath string
	Subtree      Subtree
}

// rule pairs a predicate with the subtree it routes to. Rules are evaluated
// in order; the first match wins. Keeping the policy as a flat ordered list
// keeps each rule independently testable and new kind/group combinations
// additive.
type rule struct {
	name    string
	matches func(catalog.Record) bool
	subtree Subtree
}

var placementRules = []rule{
	{
		// Server-only artifacts route to a dedicated subtree regardless of
		// group, so a client install never picks up a server binary.
		name: "server-only",
		matches: func(record catalog.Record) bool {
			if record.Kind == catalog.KindServer || record.Kind == catalog.KindInstaller {
				return true
			}
			return record.ClientSupport == catalog.SupportUnsupported &&
				record.ServerSupport != catalog.SupportUnsupported
		},
		subtree: SubtreeServer,
	},
	{
		name: "required",
		matches: func(record catalog.Record) bool {
			return record.Group == catalog.GroupRequired
		},
		subtree: SubtreeRoot,
	},
	{
		// Optional and admin are placement-equivalent.
		name: "optional",
		matches: func(record catalog.Record) bool {
			return record.Group == catalog.GroupOptional || record.Group == catalog.GroupAdmin
		},
		subtree: SubtreeOptional,
	},
}

// Resolve maps one record, for a target game version, to zero or one
// destination under the release root. Records for other versions and
// blocked records have no placement.
func Resolve(record catalog.Record, targetVersion string) (Placement, bool) {
	if record.GameVersion != targetVersion {
		return Placement{}, false
	}
	if record.Group == catalog.GroupBlock {
		return Placement{}, false
	}
	for _, candidate := range placementRules {
		if candidate.matches(record) {
			return Placement{
				RelativePath: path.Join(string(candidate.subtree), record.ArtifactFilename),
				Subtree:      candidate.subtree,
			}, true
		}
	}
	return Placement{}, false
}

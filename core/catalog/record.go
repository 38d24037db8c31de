// Package catalog models the declarative record store that drives release
// builds: one row per mod, shaderpack, or server component, each carrying an
// integrity hash over its own fields.
package catalog

import "fmt"

// Group is the install-group intent of a record. Admin rows are
// placement-equivalent to optional; block rows never ship.
type Group string

const (
	GroupRequired Group = "required"
	GroupOptional Group = "optional"
	GroupAdmin    Group = "admin"
	GroupBlock    Group = "block"
)

func ParseGroup(value string) (Group, error) {
	switch Group(value) {
	case GroupRequired, GroupOptional, GroupAdmin, GroupBlock:
		return Group(value), nil
	}
	return "", fmt.Errorf("unknown group: %q", value)
}

// Kind is the artifact type of a record.
type Kind string

const (
	KindMod          Kind = "mod"
	KindShaderpack   Kind = "shaderpack"
	KindResourcepack Kind = "resourcepack"
	KindDatapack     Kind = "datapack"
	KindServer       Kind = "server"
	KindLauncher     Kind = "launcher"
	KindInstaller    Kind = "installer"
)

func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindMod, KindShaderpack, KindResourcepack, KindDatapack, KindServer, KindLauncher, KindInstaller:
		return Kind(value), nil
	}
	return "", fmt.Errorf("unknown kind: %q", value)
}

// Support states whether an artifact is meaningful on one side of the
// client/server split.
type Support string

const (
	SupportRequired    Support = "required"
	SupportOptional    Support = "optional"
	SupportUnsupported Support = "unsupported"
)

func ParseSupport(value string) (Support, error) {
	switch Support(value) {
	case SupportRequired, SupportOptional, SupportUnsupported:
		return Support(value), nil
	}
	return "", fmt.Errorf("unknown support: %q", value)
}

// Record is one catalog row. IntegrityHash is a sha256 hex digest over the
// canonical JSON of every other field; see ComputeHash.
type Record struct {
	Group            Group
	Kind             Kind
	ID               string
	Name             string
	Description      string
	Version          string
	ArtifactFilename string
	ClientSupport    Support
	ServerSupport    Support
	GameVersion      string
	IntegrityHash    string
}

package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/packforge/packforge/core/jcs"
)

// hashPayload fixes the field set and key names the integrity digest covers.
// The stored hash itself is deliberately absent. Key order does not matter
// here because the payload is canonicalized (RFC 8785) before hashing.
type hashPayload struct {
	Group            string `json:"group"`
	Kind             string `json:"kind"`
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Version          string `json:"version"`
	ArtifactFilename string `json:"artifact_filename"`
	ClientSupport    string `json:"client_support"`
	ServerSupport    string `json:"server_support"`
	GameVersion      string `json:"game_version"`
}

// ComputeHash returns the integrity digest for a record: sha256 over the
// JCS-canonical JSON of all fields except the hash itself. The result is
// stable across platforms and locales.
func ComputeHash(record Record) (string, error) {
	payload := hashPayload{
		Group:            string(record.Group),
		Kind:             string(record.Kind),
		ID:               record.ID,
		Name:             record.Name,
		Description:      record.Description,
		Version:          record.Version,
		ArtifactFilename: record.ArtifactFilename,
		ClientSupport:    string(record.ClientSupport),
		ServerSupport:    string(record.ServerSupport),
		GameVersion:      record.GameVersion,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode hash payload: %w", err)
	}
	digest, err := jcs.DigestHex(encoded)
	if err != nil {
		return "", fmt.Errorf("digest hash payload: %w", err)
	}
	return digest, nil
}

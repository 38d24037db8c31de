// Package manifest builds and checks the textual release manifest that
// rides inside every assembled archive.
package manifest

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/packforge/packforge/core/jcs"
	"github.com/packforge/packforge/core/placement"
	"github.com/packforge/packforge/core/sign"
)

const (
	SchemaID      = "packforge.release.manifest"
	SchemaVersion = "1.0.0"
)

type FileEntry struct {
	Path     string `json:"path"`
	SHA256   string `json:"sha256"`
	RecordID string `json:"record_id"`
}

type Manifest struct {
	SchemaID       string           `json:"schema_id"`
	SchemaVersion  string           `json:"schema_version"`
	BuildID        string           `json:"build_id"`
	PackName       string           `json:"pack_name"`
	PackVersion    string           `json:"pack_version"`
	GameVersion    string           `json:"game_version"`
	CreatedAt      string           `json:"created_at"`
	Files          []FileEntry      `json:"files"`
	ManifestDigest string           `json:"manifest_digest,omitempty"`
	Signatures     []sign.Signature `json:"signatures,omitempty"`
}

type BuildOptions struct {
	PackName    string
	PackVersion string
	GameVersion string
	BuildID     string
	CreatedAt   time.Time
}

// Build hashes every expected file in the realized tree and produces the
// manifest, digest included. The digest covers the manifest minus its own
// digest and signature fields, canonicalized per RFC 8785.
func Build(treeRoot string, expected []placement.ExpectedFileEntry, options BuildOptions) (Manifest, error) {
	buildID := options.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	}
	createdAt := options.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	files := make([]FileEntry, 0, len(expected))
	for _, entry := range expected {
		digest, err := hashFile(filepath.Join(treeRoot, filepath.FromSlash(entry.RelativePath)))
		if err != nil {
			return Manifest{}, fmt.Errorf("hash %s: %w", entry.RelativePath, err)
		}
		files = append(files, FileEntry{
			Path:     entry.RelativePath,
			SHA256:   digest,
			RecordID: entry.RecordID,
		})
	}

	result := Manifest{
		SchemaID:      SchemaID,
		SchemaVersion: SchemaVersion,
		BuildID:       buildID,
		PackName:      options.PackName,
		PackVersion:   options.PackVersion,
		GameVersion:   options.GameVersion,
		CreatedAt:     createdAt.Format(time.RFC3339),
		Files:         files,
	}
	digest, err := Digest(result)
	if err != nil {
		return Manifest{}, err
	}
	result.ManifestDigest = digest
	return result, nil
}

// Digest computes the manifest digest over every field except the digest
// itself and the signatures.
func Digest(m Manifest) (string, error) {
	m.ManifestDigest = ""
	m.Signatures = nil
	encoded, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	digest, err := jcs.DigestHex(encoded)
	if err != nil {
		return "", fmt.Errorf("digest manifest: %w", err)
	}
	return digest, nil
}

// Sign appends an ed25519 signature over the manifest digest.
func Sign(m *Manifest, privateKey ed25519.PrivateKey) error {
	if m.ManifestDigest == "" {
		return fmt.Errorf("manifest digest not set")
	}
	signature, err := sign.SignDigestHex(privateKey, m.ManifestDigest)
	if err != nil {
		return fmt.Errorf("sign manifest digest: %w", err)
	}
	m.Signatures = append(m.Signatures, signature)
	return nil
}

// CheckDigest recomputes the digest and compares it to the stored value.
func CheckDigest(m Manifest) error {
	computed, err := Digest(m)
	if err != nil {
		return err
	}
	if computed != m.ManifestDigest {
		return fmt.Errorf("manifest digest mismatch: stored %s, computed %s", m.ManifestDigest, computed)
	}
	return nil
}

// VerifySignatures checks every signature against the public key and
// returns the number of valid ones.
func VerifySignatures(m Manifest, publicKey ed25519.PublicKey) (int, []string) {
	valid := 0
	var failures []string
	for _, signature := range m.Signatures {
		ok, err := sign.VerifyDigestHex(publicKey, signature)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		if !ok {
			failures = append(failures, "signature verification failed")
			continue
		}
		if signature.SignedDigest != m.ManifestDigest {
			failures = append(failures, "signature covers a different digest")
			continue
		}
		valid++
	}
	return valid, failures
}

func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.SchemaID != SchemaID {
		return Manifest{}, fmt.Errorf("manifest schema_id must be %s", SchemaID)
	}
	if m.SchemaVersion != SchemaVersion {
		return Manifest{}, fmt.Errorf("manifest schema_version must be %s", SchemaVersion)
	}
	return m, nil
}

func hashFile(path string) (string, error) {
	// #nosec G304 -- path is derived from the build's own destination tree.
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

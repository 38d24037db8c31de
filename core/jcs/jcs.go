package jcs

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gowebpki/jcs"
)

// Canonical returns the RFC 8785 (JCS) canonical form of JSON input.
func Canonical(input []byte) ([]byte, error) {
	return jcs.Transform(input)
}

// DigestHex canonicalizes JSON (RFC 8785) and returns the sha256 digest as
// 64 lowercase hex characters. Every integrity and manifest digest in this
// repository goes through this function so digests stay stable across
// platforms and locales.
func DigestHex(input []byte) (string, error) {
	canonical, err := Canonical(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

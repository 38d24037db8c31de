package sign

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func TestSignAndVerifyDigestHex(t *testing.T) {
	keys, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	sum := sha256.Sum256([]byte("release manifest"))
	digestHex := hex.EncodeToString(sum[:])

	sig, err := SignDigestHex(keys.Private, digestHex)
	if err != nil {
		t.Fatalf("sign digest: %v", err)
	}
	if sig.Alg != AlgEd25519 {
		t.Fatalf("unexpected alg: %s", sig.Alg)
	}
	if sig.KeyID != KeyID(keys.Public) {
		t.Fatalf("key id mismatch")
	}
	if sig.SignedDigest != digestHex {
		t.Fatalf("signed digest not recorded")
	}

	ok, err := VerifyDigestHex(keys.Public, sig)
	if err != nil {
		t.Fatalf("verify digest: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid signature")
	}
}

func TestVerifyDigestHexRejectsWrongKey(t *testing.T) {
	signer, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	other, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	sum := sha256.Sum256([]byte("payload"))
	sig, err := SignDigestHex(signer.Private, hex.EncodeToString(sum[:]))
	if err != nil {
		t.Fatalf("sign digest: %v", err)
	}
	if _, err := VerifyDigestHex(other.Public, sig); err == nil {
		t.Fatalf("expected key id mismatch error")
	}
}

func TestSignDigestHexRejectsBadDigest(t *testing.T) {
	keys, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	if _, err := SignDigestHex(keys.Private, "not-hex"); err == nil {
		t.Fatalf("expected error for non-hex digest")
	}
	if _, err := SignDigestHex(keys.Private, "abcd"); err == nil {
		t.Fatalf("expected error for short digest")
	}
}

func TestLoadKeysBase64RoundTrip(t *testing.T) {
	keys, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "packforge.key")
	publicPath := filepath.Join(dir, "packforge.pub")
	if err := os.WriteFile(privatePath, []byte(base64.StdEncoding.EncodeToString(keys.Private)+"\n"), 0o600); err != nil {
		t.Fatalf("write private key: %v", err)
	}
	if err := os.WriteFile(publicPath, []byte(base64.StdEncoding.EncodeToString(keys.Public)), 0o600); err != nil {
		t.Fatalf("write public key: %v", err)
	}

	loadedPrivate, err := LoadPrivateKeyBase64(privatePath)
	if err != nil {
		t.Fatalf("load private key: %v", err)
	}
	loadedPublic, err := LoadPublicKeyBase64(publicPath)
	if err != nil {
		t.Fatalf("load public key: %v", err)
	}
	if !loadedPrivate.Equal(keys.Private) {
		t.Fatalf("private key round trip mismatch")
	}
	if !loadedPublic.Equal(keys.Public) {
		t.Fatalf("public key round trip mismatch")
	}
}

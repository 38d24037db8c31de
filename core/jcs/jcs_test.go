package jcs

import "testing"

func TestCanonicalOrdersKeys(t *testing.T) {
	in := []byte(`{ "kind":"mod", "group":"required" }`)
	want := `{"group":"required","kind":"mod"}`
	out, err := Canonical(in)
	if err != nil {
		t.Fatalf("canonicalize error: %v", err)
	}
	if string(out) != want {
		t.Fatalf("unexpected canonical form: %s", string(out))
	}
}

func TestDigestHexStable(t *testing.T) {
	first := []byte(`{"group":"required","kind":"mod"}`)
	second := []byte(`{ "kind":"mod", "group":"required" }`)

	firstDigest, err := DigestHex(first)
	if err != nil {
		t.Fatalf("digest error: %v", err)
	}
	secondDigest, err := DigestHex(second)
	if err != nil {
		t.Fatalf("digest error: %v", err)
	}
	if firstDigest != secondDigest {
		t.Fatalf("expected same digest for equivalent JSON")
	}
	if len(firstDigest) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(firstDigest))
	}
}

func TestDigestHexInvalidJSON(t *testing.T) {
	if _, err := DigestHex([]byte(`{`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

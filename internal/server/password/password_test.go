package password

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "pw1" || hash == "" {
		t.Fatalf("hash must not be empty or equal to the plaintext")
	}

	if !h.Compare(hash, "pw1") {
		t.Fatalf("Compare must accept the original password")
	}
	if h.Compare(hash, "pw2") {
		t.Fatalf("Compare must reject a different password")
	}
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	h1, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("bcrypt hashes of the same password must differ (random salt)")
	}
}

func TestBcryptHasher_CompareGarbageHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()
	if h.Compare("not-a-bcrypt-hash", "pw") {
		t.Fatalf("Compare must reject a malformed hash")
	}
}

package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-passphrase" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPasswordHash("s3cret-passphrase", hash) {
		t.Fatal("expected the correct password to verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("expected a wrong password to fail verification")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("raw-token-value")
	b := HashToken("raw-token-value")
	if a != b {
		t.Fatal("hashing the same token twice must give the same digest")
	}
	if a == "raw-token-value" {
		t.Fatal("digest must not equal the raw token")
	}
	if len(a) != 64 {
		t.Fatalf("expected a 64-char hex sha-256 digest, got length %d", len(a))
	}
	if HashToken("different-token") == a {
		t.Fatal("different tokens must not collide")
	}
}

package auth

import (
	"testing"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	const plaintext = "pw123456"

	hash, err := HashPassword(plaintext, DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == plaintext {
		t.Fatalf("hash equals plaintext")
	}
	if err := ComparePassword(hash, plaintext); err != nil {
		t.Fatalf("ComparePassword error: %v", err)
	}
	if err := ComparePassword(hash, "wrong-password"); err == nil {
		t.Fatalf("expected mismatch error, got nil")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-input", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-input", DefaultBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input are identical")
	}
}

func TestHashPassword_CostClamped(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 99)
	if err != nil {
		t.Fatalf("HashPassword with out-of-range cost: %v", err)
	}
	if err := ComparePassword(hash, "pw"); err != nil {
		t.Fatalf("ComparePassword error: %v", err)
	}
}

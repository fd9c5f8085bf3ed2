package helpers

import "testing"

func TestHashPassword_NotPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw123" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CompareHashAndPassword(hash, "pw123") {
		t.Fatal("round-trip compare failed")
	}
}

func TestCompareHashAndPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CompareHashAndPassword(hash, "incorrect") {
		t.Fatal("compare accepted the wrong password")
	}
}

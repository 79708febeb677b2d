package passhash

import "testing"

func TestHashPassword_NotPlaintext(t *testing.T) {
	hash, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "123456" {
		t.Fatal("hash must not equal the plaintext password")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !VerifyPassword("123456", hash) {
		t.Fatal("correct password should verify")
	}
	if VerifyPassword("654321", hash) {
		t.Fatal("wrong password should not verify")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

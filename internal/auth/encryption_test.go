package auth

import (
	"encoding/base64"
	"testing"
)

func TestDeriveKey_RandomSalt(t *testing.T) {
	first, err := DeriveKey("correct-horse-battery", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	second, err := DeriveKey("correct-horse-battery", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	if first.Salt == second.Salt {
		t.Error("expected different random salts for separate derivations")
	}
	if first.EncryptedPassword == second.EncryptedPassword {
		t.Error("expected different hashes under different salts")
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := make([]byte, kdfSaltLength)
	for i := range salt {
		salt[i] = byte(i)
	}

	first, err := DeriveKey("password123", salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	second, err := DeriveKey("password123", salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	if first.EncryptedPassword != second.EncryptedPassword {
		t.Error("expected identical hashes for identical password and salt")
	}
	if first.Salt != second.Salt {
		t.Error("expected identical encoded salts")
	}
}

func TestDeriveKey_Encoding(t *testing.T) {
	result, err := DeriveKey("password123", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	// Both values must be padded base64url, reversible to raw bytes.
	hash, err := base64.URLEncoding.DecodeString(result.EncryptedPassword)
	if err != nil {
		t.Fatalf("hash is not padded base64url: %v", err)
	}
	if len(hash) != kdfKeyLength {
		t.Errorf("decoded hash length = %d, want %d", len(hash), kdfKeyLength)
	}

	salt, err := base64.URLEncoding.DecodeString(result.Salt)
	if err != nil {
		t.Fatalf("salt is not padded base64url: %v", err)
	}
	if len(salt) != kdfSaltLength {
		t.Errorf("decoded salt length = %d, want %d", len(salt), kdfSaltLength)
	}
}

func TestDeriveKey_EmptyPassword(t *testing.T) {
	result, err := DeriveKey("", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if result.EncryptedPassword == "" {
		t.Error("expected non-empty hash for empty password")
	}
}

func TestVerifyPassword(t *testing.T) {
	derived, err := DeriveKey("password123", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		match, err := VerifyPassword("password123", derived.EncryptedPassword, derived.Salt)
		if err != nil {
			t.Fatalf("VerifyPassword() error = %v", err)
		}
		if !match {
			t.Error("expected correct password to verify")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		match, err := VerifyPassword("password124", derived.EncryptedPassword, derived.Salt)
		if err != nil {
			t.Fatalf("VerifyPassword() error = %v", err)
		}
		if match {
			t.Error("expected wrong password to fail verification")
		}
	})

	t.Run("malformed salt", func(t *testing.T) {
		_, err := VerifyPassword("password123", derived.EncryptedPassword, "not base64!")
		if err == nil {
			t.Error("expected error for malformed stored salt")
		}
	})
}

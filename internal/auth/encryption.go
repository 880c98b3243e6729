package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
)

// PBKDF2-HMAC-SHA3-256 parameters for credential encryption.
const (
	// kdfSaltLength is the random salt length in bytes.
	kdfSaltLength = 32

	// kdfKeyLength is the derived key length in bytes.
	kdfKeyLength = 32

	// kdfIterations is the PBKDF2 iteration count.
	kdfIterations = 600_000
)

// PasswordAndSalt holds a derived password hash and the salt used to
// produce it. Both are padded base64url strings, byte-for-byte reversible
// with base64.URLEncoding.
type PasswordAndSalt struct {
	EncryptedPassword string
	Salt              string
}

// DeriveKey derives a password hash using PBKDF2-HMAC-SHA3-256.
//
// When salt is nil a fresh 32-byte random salt is generated; passing an
// explicit salt makes derivation deterministic, which is how stored
// credentials are verified. An empty password is valid input.
func DeriveKey(password string, salt []byte) (PasswordAndSalt, error) {
	if salt == nil {
		salt = make([]byte, kdfSaltLength)
		if _, err := rand.Read(salt); err != nil {
			return PasswordAndSalt{}, fmt.Errorf("generating salt: %w", err)
		}
	}

	key := pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLength, sha3.New256)

	return PasswordAndSalt{
		EncryptedPassword: base64.URLEncoding.EncodeToString(key),
		Salt:              base64.URLEncoding.EncodeToString(salt),
	}, nil
}

// VerifyPassword re-derives the candidate password with the stored salt and
// compares it against the stored hash in constant time.
func VerifyPassword(password, storedHash, storedSalt string) (bool, error) {
	salt, err := base64.URLEncoding.DecodeString(storedSalt)
	if err != nil {
		return false, fmt.Errorf("decoding stored salt: %w", err)
	}

	derived, err := DeriveKey(password, salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(
		[]byte(derived.EncryptedPassword),
		[]byte(storedHash),
	) == 1, nil
}

package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"
)

// PBKDF2-HMAC-SHA512 parameters for API key derivation.
const (
	// apiKeyLength is the derived key length in bytes.
	apiKeyLength = 64

	// apiKeyIterations is the PBKDF2 iteration count.
	apiKeyIterations = 210_000

	// apiKeyPrefix marks issued keys so they are recognisable in logs
	// and configuration.
	apiKeyPrefix = "sk-cm-"
)

// KeyGenerator derives deterministic API keys for third-party consumers.
//
// The same (domain, timestamp) pair always yields the same key, so a key
// never needs to be stored: it can be re-derived from its issuance record
// and compared against a presented key.
type KeyGenerator struct {
	masterKey []byte
	salt      []byte
}

// NewKeyGenerator builds a KeyGenerator from hex-encoded config material.
func NewKeyGenerator(cfg config.APIKeyConfig) (*KeyGenerator, error) {
	masterKey, err := cfg.MasterKeyBytes()
	if err != nil {
		return nil, err
	}
	if len(masterKey) == 0 {
		return nil, fmt.Errorf("api key master key is empty")
	}

	salt, err := cfg.PersistentSaltBytes()
	if err != nil {
		return nil, err
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("api key salt is empty")
	}

	return &KeyGenerator{masterKey: masterKey, salt: salt}, nil
}

// Generate derives the API key for a domain at the given issuance timestamp.
//
// The seed "domain:timestamp" is bound to the master key with SHA-256, then
// stretched with PBKDF2-HMAC-SHA512 using the fixed salt. The output is
// unpadded base64url with the sk-cm- prefix.
func (g *KeyGenerator) Generate(domain string, timestamp int64) string {
	seed := fmt.Sprintf("%s:%d", domain, timestamp)

	h := sha256.New()
	h.Write(g.masterKey)
	h.Write([]byte(seed))
	input := h.Sum(nil)

	derived := pbkdf2.Key(input, g.salt, apiKeyIterations, apiKeyLength, sha512.New)

	return apiKeyPrefix + base64.RawURLEncoding.EncodeToString(derived)
}

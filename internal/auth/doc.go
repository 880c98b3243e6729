// Package auth provides credential encryption, API key generation, and
// JWT issuance/verification for the cocktail-maker API.
//
// Passwords are derived with PBKDF2-HMAC-SHA3-256 and stored alongside a
// per-user random salt. Access and refresh tokens are HMAC-signed JWTs
// carrying role claims; the verifier performs ordered fail-fast checks so
// callers can map each failure class to a distinct HTTP response.
//
// Thread Safety: Issuer, Verifier, and KeyGenerator are immutable after
// construction and safe for concurrent use.
package auth

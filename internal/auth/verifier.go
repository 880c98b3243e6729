package auth

import (
	"time"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates access tokens and enforces role requirements.
//
// Checks run fail-fast in a fixed order so each failure maps to exactly
// one sentinel: signature/structure, audience, expiry, not-before,
// issued-at, issuer, token type, then roles. Only the role check yields
// ErrForbidden; everything before it is a credential problem.
type Verifier struct {
	secret   []byte
	method   jwt.SigningMethod
	issuer   string
	audience string

	// now is replaceable for tests.
	now func() time.Time
}

// NewVerifier builds a Verifier from JWT configuration.
func NewVerifier(cfg config.JWTConfig) (*Verifier, error) {
	method, err := signingMethodFor(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		secret:   []byte(cfg.Secret),
		method:   method,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Verify validates an access token and checks it carries at least one of
// the required roles. On success the parsed claims are returned so callers
// can read the subject and jti.
func (v *Verifier) Verify(tokenString string, requiredRoles []Role) (*AccessClaims, error) {
	var claims AccessClaims
	if err := parseSigned(tokenString, &claims, v.secret, v.method); err != nil {
		return nil, err
	}

	if err := validateAudience(claims.Audience, v.audience); err != nil {
		return nil, err
	}

	now := v.now()

	// Expiry at exactly now counts as expired.
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
		return nil, ErrTokenExpired
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, ErrTokenNotYetValid
	}
	if claims.IssuedAt != nil && claims.IssuedAt.Time.After(now) {
		return nil, ErrTokenIssuedInFuture
	}

	if claims.Issuer != v.issuer {
		return nil, ErrInvalidIssuer
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}

	if !CheckRoles(claims.Roles, requiredRoles) {
		return nil, ErrForbidden
	}

	return &claims, nil
}

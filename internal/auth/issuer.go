package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"
)

// RolesLookup resolves the current roles of a user account.
//
// The issuer consults it on refresh so that role changes and revocations
// take effect without waiting for the refresh token to expire.
type RolesLookup interface {
	GetRoles(ctx context.Context, userID string) ([]Role, error)
}

// TokenPair is an access/refresh token pair issued at sign-in.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer mints HMAC-signed access and refresh tokens.
type Issuer struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	roles      RolesLookup

	// now is replaceable for tests.
	now func() time.Time
}

// NewIssuer builds an Issuer from JWT configuration and a roles collaborator.
func NewIssuer(cfg config.JWTConfig, roles RolesLookup) (*Issuer, error) {
	method, err := signingMethodFor(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Issuer{
		secret:     []byte(cfg.Secret),
		method:     method,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessTTL:  cfg.AccessTokenDuration(),
		refreshTTL: cfg.RefreshTokenDuration(),
		roles:      roles,
		now:        time.Now,
	}, nil
}

// MintPair issues an access/refresh token pair for a signed-in user.
//
// Both tokens share the same issuance instant. The refresh token gets its
// own jti and back-references the access token's jti, but carries no roles.
func (i *Issuer) MintPair(userID string, roles []Role) (*TokenPair, error) {
	now := i.now()
	accessJTI := uuid.NewString()

	access, err := i.mintAccess(userID, accessJTI, now, roles)
	if err != nil {
		return nil, err
	}

	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
		},
		TokenType: TokenTypeRefresh,
		AccessJTI: accessJTI,
	}

	refresh, err := jwt.NewWithClaims(i.method, refreshClaims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token and mints a new access token.
//
// Roles are re-read from the user store rather than trusted from any token,
// and the new access token gets a fresh jti. The presented refresh token
// remains valid until its own expiry (no rotation).
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var claims RefreshClaims
	if err := parseSigned(refreshToken, &claims, i.secret, i.method); err != nil {
		return "", err
	}

	now := i.now()

	if err := validateAudience(claims.Audience, i.audience); err != nil {
		return "", err
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
		return "", ErrTokenExpired
	}
	if claims.Issuer != i.issuer {
		return "", ErrInvalidIssuer
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", ErrWrongTokenType
	}

	roles, err := i.roles.GetRoles(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("looking up roles for refresh: %w", err)
	}

	return i.mintAccess(claims.Subject, uuid.NewString(), now, roles)
}

// mintAccess signs an access token with the given jti and issuance instant.
func (i *Issuer) mintAccess(userID, jti string, now time.Time, roles []Role) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
		},
		Roles:     roles,
		TokenType: TokenTypeAccess,
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// signingMethodFor maps a config algorithm name to an HMAC signing method.
func signingMethodFor(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
}

// parseSigned verifies a token's structure and signature into claims.
// Claim validation (exp, nbf, audience, issuer) is deliberately left to
// the callers, which perform ordered checks with distinct sentinels.
func parseSigned(tokenString string, claims jwt.Claims, secret []byte, method jwt.SigningMethod) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// validateAudience checks that the expected audience appears in the claim.
func validateAudience(audience jwt.ClaimStrings, expected string) error {
	for _, aud := range audience {
		if aud == expected {
			return nil
		}
	}
	return ErrInvalidAudience
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminator values carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AccessClaims is the claim set of an access token.
//
// Roles are embedded at issuance and checked by the verifier; the token
// type discriminator prevents a refresh token from being accepted where
// an access token is expected.
type AccessClaims struct {
	jwt.RegisteredClaims
	Roles     []Role `json:"roles"`
	TokenType string `json:"type"`
}

// RefreshClaims is the claim set of a refresh token.
//
// Refresh tokens carry no roles: current roles are re-read from the user
// store at refresh time so revocations take effect on the next refresh.
// AccessJTI back-references the access token issued alongside this one.
type RefreshClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
	AccessJTI string `json:"access_jti"`
}

package auth

import (
	"errors"
	"regexp"
	"time"
)

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleUser can browse and search the catalog.
	RoleUser Role = "user"

	// RoleAdmin can additionally register, update, and remove catalog
	// documents, manage metadata, and publish API keys.
	RoleAdmin Role = "admin"
)

// CheckRoles reports whether any of the user's roles appears in the
// required set. An empty required set matches nothing.
func CheckRoles(userRoles, requiredRoles []Role) bool {
	for _, r := range userRoles {
		for _, req := range requiredRoles {
			if r == req {
				return true
			}
		}
	}
	return false
}

// Account field constraints.
const (
	minUserIDLength   = 4
	maxUserIDLength   = 14
	minPasswordLength = 8
	maxPasswordLength = 20
	maxRoles          = 4
	phoneNumberLength = 11
)

// alphanumericPattern matches strings containing only letters and digits.
var alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// numericPattern matches strings containing only digits.
var numericPattern = regexp.MustCompile(`^[0-9]+$`)

// User represents a registered account as stored in the users collection.
// PasswordHash and Salt are padded base64url strings produced by DeriveKey.
type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	PasswordHash string    `bson:"password" json:"-"` // never serialised
	Salt         string    `bson:"salt" json:"-"`     // never serialised
	Email        string    `bson:"email" json:"email"`
	Roles        []Role    `bson:"roles" json:"roles"`
	FirstName    string    `bson:"firstname" json:"firstname"`
	LastName     string    `bson:"lastname" json:"lastname"`
	Address      string    `bson:"address" json:"address"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Registration is the input for creating a new account.
type Registration struct {
	UserID      string `json:"user_id"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Roles       []Role `json:"roles"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// Validate checks registration fields against account constraints.
func (r Registration) Validate() error {
	if len(r.UserID) < minUserIDLength || len(r.UserID) > maxUserIDLength {
		return errors.New("user_id must be 4-14 characters")
	}
	if !alphanumericPattern.MatchString(r.UserID) {
		return errors.New("user_id must be alphanumeric")
	}
	if len(r.Password) < minPasswordLength || len(r.Password) > maxPasswordLength {
		return errors.New("password must be 8-20 characters")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if len(r.Roles) < 1 || len(r.Roles) > maxRoles {
		return errors.New("roles must contain 1-4 entries")
	}
	if r.FirstName == "" || !alphanumericPattern.MatchString(r.FirstName) {
		return errors.New("firstname must be alphanumeric")
	}
	if r.LastName == "" || !alphanumericPattern.MatchString(r.LastName) {
		return errors.New("lastname must be alphanumeric")
	}
	if r.Address == "" {
		return errors.New("address is required")
	}
	if len(r.PhoneNumber) != phoneNumberLength || !numericPattern.MatchString(r.PhoneNumber) {
		return errors.New("phone_number must be 11 digits")
	}
	return nil
}

// Login is the input for authenticating an existing account.
type Login struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Validate checks login fields against account constraints.
func (l Login) Validate() error {
	if len(l.UserID) < minUserIDLength || len(l.UserID) > maxUserIDLength {
		return errors.New("userId must be 4-14 characters")
	}
	if !alphanumericPattern.MatchString(l.UserID) {
		return errors.New("userId must be alphanumeric")
	}
	if len(l.Password) < minPasswordLength || len(l.Password) > maxPasswordLength {
		return errors.New("password must be 8-20 characters")
	}
	return nil
}

// Sentinel errors for auth operations. The verifier returns one per
// failure class so the HTTP layer can keep 401 and 403 responses distinct.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrInvalidAudience     = errors.New("invalid audience")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenNotYetValid    = errors.New("token is not yet valid")
	ErrTokenIssuedInFuture = errors.New("token issued in the future")
	ErrInvalidIssuer       = errors.New("invalid issuer")
	ErrWrongTokenType      = errors.New("invalid token type")
	ErrForbidden           = errors.New("insufficient permissions")
)

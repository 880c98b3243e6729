package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dongju93/cocktail-maker/internal/auth"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// Response is the uniform API envelope. Code mirrors the HTTP status so
// clients reading the body alone can branch on it.
type Response struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Envelope status values.
const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// writeJSON writes a JSON body with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, code int, data any, message string) {
	writeJSON(w, code, Response{
		Status:  statusSuccess,
		Code:    code,
		Data:    data,
		Message: message,
	})
}

// writeFailure writes a failure envelope.
func writeFailure(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Response{
		Status:  statusFailed,
		Code:    code,
		Data:    nil,
		Message: message,
	})
}

// writeDomainError maps auth and catalog sentinels onto HTTP responses.
// Token-class failures are 401; only a role mismatch yields 403.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		writeFailure(w, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, auth.ErrTokenExpired):
		writeFailure(w, http.StatusUnauthorized, "Token has expired")
	case errors.Is(err, auth.ErrInvalidAudience):
		writeFailure(w, http.StatusUnauthorized, "Invalid audience")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		writeFailure(w, http.StatusUnauthorized, "Token is not yet valid")
	case errors.Is(err, auth.ErrTokenIssuedInFuture):
		writeFailure(w, http.StatusUnauthorized, "Token issued in the future")
	case errors.Is(err, auth.ErrInvalidIssuer):
		writeFailure(w, http.StatusUnauthorized, "Invalid issuer")
	case errors.Is(err, auth.ErrWrongTokenType):
		writeFailure(w, http.StatusUnauthorized, "Invalid token type")
	case errors.Is(err, auth.ErrTokenInvalid):
		writeFailure(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Invalid user_id or password")
	case errors.Is(err, auth.ErrUserExists):
		writeFailure(w, http.StatusConflict, "User already exists")
	case errors.Is(err, auth.ErrUserNotFound):
		writeFailure(w, http.StatusNotFound, "User not found")
	case errors.Is(err, catalog.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "Document not found")
	case errors.Is(err, catalog.ErrInvalidID):
		writeFailure(w, http.StatusBadRequest, "Invalid document id")
	case errors.Is(err, catalog.ErrMetadataNotFound):
		writeFailure(w, http.StatusNotFound, "Metadata not found")
	case errors.Is(err, catalog.ErrInvalidMetadata):
		writeFailure(w, http.StatusBadRequest, "Invalid metadata values provided")
	default:
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dongju93/cocktail-maker/internal/auth"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return resp
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, map[string]any{"id": "abc"}, "created")

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	resp := decodeResponse(t, rec)
	if resp.Status != statusSuccess {
		t.Errorf("envelope status = %q, want %q", resp.Status, statusSuccess)
	}
	if resp.Code != http.StatusCreated {
		t.Errorf("envelope code = %d, want %d", resp.Code, http.StatusCreated)
	}
	if resp.Message != "created" {
		t.Errorf("message = %q, want %q", resp.Message, "created")
	}
}

func TestWriteFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFailure(rec, http.StatusBadRequest, "nope")

	resp := decodeResponse(t, rec)
	if resp.Status != statusFailed {
		t.Errorf("envelope status = %q, want %q", resp.Status, statusFailed)
	}
	if resp.Code != http.StatusBadRequest {
		t.Errorf("envelope code = %d, want %d", resp.Code, http.StatusBadRequest)
	}
	if resp.Data != nil {
		t.Errorf("data = %v, want nil", resp.Data)
	}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden", auth.ErrForbidden, http.StatusForbidden},
		{"token expired", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid audience", auth.ErrInvalidAudience, http.StatusUnauthorized},
		{"not yet valid", auth.ErrTokenNotYetValid, http.StatusUnauthorized},
		{"issued in future", auth.ErrTokenIssuedInFuture, http.StatusUnauthorized},
		{"invalid issuer", auth.ErrInvalidIssuer, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"token invalid", auth.ErrTokenInvalid, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user exists", auth.ErrUserExists, http.StatusConflict},
		{"user not found", auth.ErrUserNotFound, http.StatusNotFound},
		{"document not found", catalog.ErrNotFound, http.StatusNotFound},
		{"invalid id", catalog.ErrInvalidID, http.StatusBadRequest},
		{"metadata not found", catalog.ErrMetadataNotFound, http.StatusNotFound},
		{"invalid metadata", catalog.ErrInvalidMetadata, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if resp := decodeResponse(t, rec); resp.Status != statusFailed {
				t.Errorf("envelope status = %q, want %q", resp.Status, statusFailed)
			}
		})
	}
}

func TestWriteDomainError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, errors.Join(errors.New("context"), catalog.ErrInvalidMetadata))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

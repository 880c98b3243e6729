package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/auth"
)

// Cookie names for token delivery.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// refreshTokenPath restricts the refresh cookie to the refresh endpoint,
// so the long-lived token is never sent with ordinary API calls.
const refreshTokenPath = "/api/v1/refresh-token"

// setAccessCookie delivers an access token as an httponly cookie.
func (s *Server) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.Security.JWT.AccessTokenDuration() / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setRefreshCookie delivers a refresh token as an httponly cookie,
// path-restricted to the refresh endpoint.
func (s *Server) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     refreshTokenPath,
		MaxAge:   int(s.cfg.Security.JWT.RefreshTokenDuration() / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// handleSignUp registers a new account and signs it in, delivering a
// token pair as cookies on success.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := reg.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.users.SignUp(r.Context(), reg); err != nil {
		s.logger.Error("sign-up failed", "user_id", reg.UserID, "error", err)
		writeDomainError(w, err)
		return
	}

	// Registration doubles as the first sign-in.
	roles, err := s.users.Authenticate(r.Context(), auth.Login{
		UserID:   reg.UserID,
		Password: reg.Password,
	})
	if err != nil {
		s.logger.Error("post-sign-up authentication failed", "user_id", reg.UserID, "error", err)
		writeDomainError(w, err)
		return
	}

	pair, err := s.issuer.MintPair(reg.UserID, roles)
	if err != nil {
		s.logger.Error("minting token pair failed", "user_id", reg.UserID, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	s.logger.Info("user signed up", "user_id", reg.UserID)
	s.recordAudit(r, audit.ActionSignUp, "user", reg.UserID, nil)

	s.setAccessCookie(w, pair.AccessToken)
	s.setRefreshCookie(w, pair.RefreshToken)
	w.WriteHeader(http.StatusNoContent)
}

// handleSignIn authenticates an account and delivers a token pair as cookies.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var login auth.Login
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := login.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	roles, err := s.users.Authenticate(r.Context(), login)
	if err != nil {
		s.logger.Warn("sign-in failed", "user_id", login.UserID)
		writeDomainError(w, err)
		return
	}

	pair, err := s.issuer.MintPair(login.UserID, roles)
	if err != nil {
		s.logger.Error("minting token pair failed", "user_id", login.UserID, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	s.logger.Info("user signed in", "user_id", login.UserID)

	s.setAccessCookie(w, pair.AccessToken)
	s.setRefreshCookie(w, pair.RefreshToken)
	w.WriteHeader(http.StatusNoContent)
}

// handleRefreshToken exchanges the refresh cookie for a new access token.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeFailure(w, http.StatusUnauthorized, "Refresh token is missing")
		return
	}

	accessToken, err := s.issuer.Refresh(r.Context(), cookie.Value)
	if err != nil {
		s.logger.Warn("token refresh failed", "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("access token refreshed")

	s.setAccessCookie(w, accessToken)
	w.WriteHeader(http.StatusNoContent)
}

// handleMyRole returns the roles carried by the verified access token.
func (s *Server) handleMyRole(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	writeSuccess(w, http.StatusOK, map[string]any{
		"roles": claims.Roles,
	}, "Successfully get user roles")
}

// apiKeyRequest is the input for publishing an API key.
type apiKeyRequest struct {
	Domain string `json:"domain"`
}

// handlePublishAPIKey derives a deterministic API key for a consumer
// domain, stamped with the current issuance time.
func (s *Server) handlePublishAPIKey(w http.ResponseWriter, r *http.Request) {
	if s.keyGen == nil {
		writeFailure(w, http.StatusServiceUnavailable, "API key generator is not configured")
		return
	}

	var req apiKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Domain == "" {
		writeFailure(w, http.StatusBadRequest, "domain is required")
		return
	}

	// Nanosecond issuance timestamp; the (domain, timestamp) pair is the
	// key's identity and must be recorded by the caller for re-derivation.
	timestamp := time.Now().UnixNano()
	apiKey := s.keyGen.Generate(req.Domain, timestamp)

	s.logger.Info("api key published", "domain", req.Domain, "timestamp", timestamp)
	s.recordAudit(r, audit.ActionPublishAPIKey, "api_key", req.Domain, map[string]any{"timestamp": timestamp})

	writeSuccess(w, http.StatusOK, map[string]any{
		"api_key": apiKey,
	}, "API key generated successfully")
}

package api

import (
	"net/http"
	"strconv"

	"github.com/dongju93/cocktail-maker/internal/audit"
)

// recordAudit writes an audit trail entry for a completed mutation.
// Failures are logged but never block the response; the audit trail is
// advisory, not transactional.
func (s *Server) recordAudit(r *http.Request, action, entityType, entityID string, details map[string]any) {
	if s.audit == nil {
		return
	}

	var userID string
	if claims := claimsFrom(r.Context()); claims != nil {
		userID = claims.Subject
	}

	entry := &audit.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Details:    details,
	}
	if err := s.audit.Record(r.Context(), entry); err != nil {
		s.logger.Warn("audit record failed",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// handleAuditList returns audit trail entries, most recent first.
func (s *Server) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeFailure(w, http.StatusServiceUnavailable, "Audit trail is not configured")
		return
	}

	query := r.URL.Query()
	filter := audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		EntityID:   query.Get("entityId"),
		UserID:     query.Get("userId"),
	}
	if n, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = n
	}
	if n, err := strconv.Atoi(query.Get("offset")); err == nil {
		filter.Offset = n
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("audit list failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, "Successfully retrieved audit logs")
}

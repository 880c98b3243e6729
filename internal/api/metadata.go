package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// metadataRequest is the input for registering vocabulary values.
type metadataRequest struct {
	Names []string `json:"names"`
}

// parseMetadataPath validates the kind and category URL parameters.
func parseMetadataPath(r *http.Request) (catalog.Kind, catalog.MetadataCategory, error) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", "", err
	}
	category, err := catalog.ParseMetadataCategory(chi.URLParam(r, "category"))
	if err != nil {
		return "", "", err
	}
	return kind, category, nil
}

// handleMetadataCreate registers tasting-note vocabulary values for a
// kind and category. Already-registered values are skipped.
func (s *Server) handleMetadataCreate(w http.ResponseWriter, r *http.Request) {
	kind, category, err := parseMetadataPath(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	var req metadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Names) == 0 {
		writeFailure(w, http.StatusBadRequest, "names is required")
		return
	}

	if err := s.metadata.Create(r.Context(), kind, category, req.Names); err != nil {
		s.logger.Error("metadata create failed", "kind", kind, "category", category, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("metadata registered", "kind", kind, "category", category, "count", len(req.Names))
	s.recordAudit(r, audit.ActionRegister, "metadata", "", map[string]any{
		"kind":     string(kind),
		"category": string(category),
		"names":    req.Names,
	})
	writeSuccess(w, http.StatusCreated, nil, "Metadata registered successfully")
}

// handleMetadataList returns the registered vocabulary for a kind and
// category, ordered by name.
func (s *Server) handleMetadataList(w http.ResponseWriter, r *http.Request) {
	kind, category, err := parseMetadataPath(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.metadata.List(r.Context(), kind, category)
	if err != nil {
		s.logger.Error("metadata list failed", "kind", kind, "category", category, "error", err)
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, entries, "Successfully retrieved metadata")
}

// handleMetadataDelete removes a vocabulary value by id.
func (s *Server) handleMetadataDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	if err := s.metadata.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.Info("metadata removed", "id", id)
	s.recordAudit(r, audit.ActionRemove, "metadata", strconv.FormatInt(id, 10), nil)
	writeSuccess(w, http.StatusOK, nil, "Metadata removed successfully")
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// spiritsFromForm builds a spirits document from a multipart form.
func spiritsFromForm(r *http.Request) (*catalog.Spirits, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}

	amount, err := formFloat(r, "amount")
	if err != nil {
		return nil, err
	}
	alcohol, err := formFloat(r, "alcohol")
	if err != nil {
		return nil, err
	}

	doc := &catalog.Spirits{
		Name:           r.FormValue("name"),
		Aroma:          formList(r, "aroma"),
		Taste:          formList(r, "taste"),
		Finish:         formList(r, "finish"),
		Kind:           r.FormValue("kind"),
		SubKind:        r.FormValue("subKind"),
		Amount:         amount,
		Alcohol:        alcohol,
		OriginNation:   r.FormValue("originNation"),
		OriginLocation: r.FormValue("originLocation"),
		Description:    r.FormValue("description"),
	}
	if doc.Name == "" {
		return nil, errRequiredField("name")
	}
	return doc, nil
}

// handleSpiritsRegister registers a new spirits document with its images.
func (s *Server) handleSpiritsRegister(w http.ResponseWriter, r *http.Request) {
	doc, err := spiritsFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.metadata.Validate(r.Context(), catalog.KindSpirits, doc.Aroma, doc.Taste, doc.Finish); err != nil {
		writeDomainError(w, err)
		return
	}

	doc.CreatedAt = time.Now().UTC()

	id, err := s.repos[catalog.KindSpirits].Insert(r.Context(), doc)
	if err != nil {
		s.logger.Error("spirits register failed", "name", doc.Name, "error", err)
		writeDomainError(w, err)
		return
	}

	if err := s.saveImages(r, catalog.KindSpirits, id); err != nil {
		s.logger.Error("spirits image save failed", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to store images")
		return
	}

	s.logger.Info("spirits registered", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionRegister, string(catalog.KindSpirits), id, map[string]any{"name": doc.Name})
	writeSuccess(w, http.StatusCreated, map[string]any{"id": id}, "Spirits registered successfully")
}

// handleSpiritsDetail returns a single spirits document by exact name.
func (s *Server) handleSpiritsDetail(w http.ResponseWriter, r *http.Request) {
	doc, err := s.repos[catalog.KindSpirits].GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, doc, "Successfully retrieved spirits")
}

// handleSpiritsSearch searches spirits with optional filters and pagination.
func (s *Server) handleSpiritsSearch(w http.ResponseWriter, r *http.Request) {
	minAlcohol, err := queryFloat(r, "minAlcohol")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	maxAlcohol, err := queryFloat(r, "maxAlcohol")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	search := catalog.SpiritsSearch{
		Name:           query.Get("name"),
		Aroma:          queryList(r, "aroma"),
		Taste:          queryList(r, "taste"),
		Finish:         queryList(r, "finish"),
		Kind:           query.Get("kind"),
		SubKind:        query.Get("subKind"),
		MinAlcohol:     minAlcohol,
		MaxAlcohol:     maxAlcohol,
		OriginNation:   query.Get("originNation"),
		OriginLocation: query.Get("originLocation"),
		Pagination:     parsePagination(r),
	}

	result, err := s.repos[catalog.KindSpirits].Search(r.Context(), search.Filter(), search.Pagination)
	if err != nil {
		s.logger.Error("spirits search failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, "Successfully searched spirits")
}

// handleSpiritsUpdate replaces a spirits document and its images.
func (s *Server) handleSpiritsUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	doc, err := spiritsFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.metadata.Validate(r.Context(), catalog.KindSpirits, doc.Aroma, doc.Taste, doc.Finish); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.replaceDocument(r, catalog.KindSpirits, id, doc); err != nil {
		s.logger.Error("spirits update failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("spirits updated", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionUpdate, string(catalog.KindSpirits), id, map[string]any{"name": doc.Name})
	w.WriteHeader(http.StatusNoContent)
}

// handleSpiritsRemove deletes a spirits document and its images.
func (s *Server) handleSpiritsRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	if err := s.removeDocument(r, catalog.KindSpirits, id); err != nil {
		s.logger.Error("spirits remove failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("spirits removed", "id", id)
	s.recordAudit(r, audit.ActionRemove, string(catalog.KindSpirits), id, nil)
	writeSuccess(w, http.StatusOK, nil, "Spirits removed successfully")
}

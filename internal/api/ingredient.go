package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// ingredientFromForm builds an ingredient document from a multipart form.
func ingredientFromForm(r *http.Request) (*catalog.Ingredient, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}

	doc := &catalog.Ingredient{
		Name:        r.FormValue("name"),
		Brand:       formList(r, "brand"),
		Kind:        r.FormValue("kind"),
		Description: r.FormValue("description"),
	}
	if doc.Name == "" {
		return nil, errRequiredField("name")
	}
	return doc, nil
}

// handleIngredientRegister registers a new ingredient document with its
// image. Ingredients carry no tasting notes, so no vocabulary check runs.
func (s *Server) handleIngredientRegister(w http.ResponseWriter, r *http.Request) {
	doc, err := ingredientFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	doc.CreatedAt = time.Now().UTC()

	id, err := s.repos[catalog.KindIngredient].Insert(r.Context(), doc)
	if err != nil {
		s.logger.Error("ingredient register failed", "name", doc.Name, "error", err)
		writeDomainError(w, err)
		return
	}

	if err := s.saveImages(r, catalog.KindIngredient, id); err != nil {
		s.logger.Error("ingredient image save failed", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to store images")
		return
	}

	s.logger.Info("ingredient registered", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionRegister, string(catalog.KindIngredient), id, map[string]any{"name": doc.Name})
	writeSuccess(w, http.StatusCreated, map[string]any{"id": id}, "Ingredient registered successfully")
}

// handleIngredientDetail returns a single ingredient document by exact name.
func (s *Server) handleIngredientDetail(w http.ResponseWriter, r *http.Request) {
	doc, err := s.repos[catalog.KindIngredient].GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, doc, "Successfully retrieved ingredient")
}

// handleIngredientSearch searches ingredients with optional filters and
// pagination.
func (s *Server) handleIngredientSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := catalog.IngredientSearch{
		Name:        query.Get("name"),
		Brand:       queryList(r, "brand"),
		Kind:        query.Get("kind"),
		Description: query.Get("description"),
		Pagination:  parsePagination(r),
	}

	result, err := s.repos[catalog.KindIngredient].Search(r.Context(), search.Filter(), search.Pagination)
	if err != nil {
		s.logger.Error("ingredient search failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, "Successfully searched ingredient")
}

// handleIngredientUpdate replaces an ingredient document and its image.
func (s *Server) handleIngredientUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	doc, err := ingredientFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.replaceDocument(r, catalog.KindIngredient, id, doc); err != nil {
		s.logger.Error("ingredient update failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("ingredient updated", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionUpdate, string(catalog.KindIngredient), id, map[string]any{"name": doc.Name})
	w.WriteHeader(http.StatusNoContent)
}

// handleIngredientRemove deletes an ingredient document and its image.
func (s *Server) handleIngredientRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	if err := s.removeDocument(r, catalog.KindIngredient, id); err != nil {
		s.logger.Error("ingredient remove failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("ingredient removed", "id", id)
	s.recordAudit(r, audit.ActionRemove, string(catalog.KindIngredient), id, nil)
	writeSuccess(w, http.StatusOK, nil, "Ingredient removed successfully")
}

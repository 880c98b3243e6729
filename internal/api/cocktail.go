package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// cocktailFromForm builds a cocktail document from a multipart form.
// The ingredients and steps fields carry JSON arrays, since multipart
// form values cannot express nested structures.
func cocktailFromForm(r *http.Request) (*catalog.Cocktail, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}

	var ingredients []catalog.Recipe
	if raw := r.FormValue("ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
			return nil, fmt.Errorf("ingredients must be a JSON array: %w", err)
		}
	}

	var steps []catalog.RecipeStep
	if raw := r.FormValue("steps"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &steps); err != nil {
			return nil, fmt.Errorf("steps must be a JSON array: %w", err)
		}
	}

	doc := &catalog.Cocktail{
		Name:         r.FormValue("name"),
		Aroma:        formList(r, "aroma"),
		Taste:        formList(r, "taste"),
		Finish:       formList(r, "finish"),
		Ingredients:  ingredients,
		Steps:        steps,
		Glass:        r.FormValue("glass"),
		Description:  r.FormValue("description"),
		OriginNation: r.FormValue("originNation"),
	}
	if doc.Name == "" {
		return nil, errRequiredField("name")
	}
	if len(doc.Ingredients) == 0 {
		return nil, errRequiredField("ingredients")
	}
	if len(doc.Steps) == 0 {
		return nil, errRequiredField("steps")
	}
	return doc, nil
}

// handleCocktailRegister registers a new cocktail recipe with its images.
func (s *Server) handleCocktailRegister(w http.ResponseWriter, r *http.Request) {
	doc, err := cocktailFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.metadata.Validate(r.Context(), catalog.KindCocktail, doc.Aroma, doc.Taste, doc.Finish); err != nil {
		writeDomainError(w, err)
		return
	}

	doc.CreatedAt = time.Now().UTC()

	id, err := s.repos[catalog.KindCocktail].Insert(r.Context(), doc)
	if err != nil {
		s.logger.Error("cocktail register failed", "name", doc.Name, "error", err)
		writeDomainError(w, err)
		return
	}

	if err := s.saveImages(r, catalog.KindCocktail, id); err != nil {
		s.logger.Error("cocktail image save failed", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to store images")
		return
	}

	s.logger.Info("cocktail registered", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionRegister, string(catalog.KindCocktail), id, map[string]any{"name": doc.Name})
	writeSuccess(w, http.StatusCreated, map[string]any{"id": id}, "Cocktail registered successfully")
}

// handleCocktailDetail returns a single cocktail recipe by exact name.
func (s *Server) handleCocktailDetail(w http.ResponseWriter, r *http.Request) {
	doc, err := s.repos[catalog.KindCocktail].GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, doc, "Successfully retrieved cocktail")
}

// handleCocktailSearch searches cocktails with optional filters and
// pagination.
func (s *Server) handleCocktailSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := catalog.CocktailSearch{
		Name:         query.Get("name"),
		Aroma:        queryList(r, "aroma"),
		Taste:        queryList(r, "taste"),
		Finish:       queryList(r, "finish"),
		Glass:        query.Get("glass"),
		OriginNation: query.Get("originNation"),
		Description:  query.Get("description"),
		Pagination:   parsePagination(r),
	}

	result, err := s.repos[catalog.KindCocktail].Search(r.Context(), search.Filter(), search.Pagination)
	if err != nil {
		s.logger.Error("cocktail search failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, "Successfully searched cocktail")
}

// handleCocktailUpdate replaces a cocktail recipe and its images.
func (s *Server) handleCocktailUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	doc, err := cocktailFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.metadata.Validate(r.Context(), catalog.KindCocktail, doc.Aroma, doc.Taste, doc.Finish); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.replaceDocument(r, catalog.KindCocktail, id, doc); err != nil {
		s.logger.Error("cocktail update failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("cocktail updated", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionUpdate, string(catalog.KindCocktail), id, map[string]any{"name": doc.Name})
	w.WriteHeader(http.StatusNoContent)
}

// handleCocktailRemove deletes a cocktail recipe and its images.
func (s *Server) handleCocktailRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	if err := s.removeDocument(r, catalog.KindCocktail, id); err != nil {
		s.logger.Error("cocktail remove failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("cocktail removed", "id", id)
	s.recordAudit(r, audit.ActionRemove, string(catalog.KindCocktail), id, nil)
	writeSuccess(w, http.StatusOK, nil, "Cocktail removed successfully")
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/catalog"
)

// liqueurFromForm builds a liqueur document from a multipart form.
func liqueurFromForm(r *http.Request) (*catalog.Liqueur, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}

	volume, err := formFloat(r, "volume")
	if err != nil {
		return nil, err
	}
	abv, err := formFloat(r, "abv")
	if err != nil {
		return nil, err
	}

	doc := &catalog.Liqueur{
		Name:            r.FormValue("name"),
		Brand:           r.FormValue("brand"),
		Taste:           formList(r, "taste"),
		Kind:            r.FormValue("kind"),
		SubKind:         r.FormValue("subKind"),
		MainIngredients: formList(r, "mainIngredients"),
		Volume:          volume,
		ABV:             abv,
		OriginNation:    r.FormValue("originNation"),
		Description:     r.FormValue("description"),
	}
	if doc.Name == "" {
		return nil, errRequiredField("name")
	}
	return doc, nil
}

// handleLiqueurRegister registers a new liqueur document with its image.
// Liqueurs carry taste notes only, so aroma and finish are not validated.
func (s *Server) handleLiqueurRegister(w http.ResponseWriter, r *http.Request) {
	doc, err := liqueurFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.metadata.Validate(r.Context(), catalog.KindLiqueur, nil, doc.Taste, nil); err != nil {
		writeDomainError(w, err)
		return
	}

	doc.CreatedAt = time.Now().UTC()

	id, err := s.repos[catalog.KindLiqueur].Insert(r.Context(), doc)
	if err != nil {
		s.logger.Error("liqueur register failed", "name", doc.Name, "error", err)
		writeDomainError(w, err)
		return
	}

	if err := s.saveImages(r, catalog.KindLiqueur, id); err != nil {
		s.logger.Error("liqueur image save failed", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to store images")
		return
	}

	s.logger.Info("liqueur registered", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionRegister, string(catalog.KindLiqueur), id, map[string]any{"name": doc.Name})
	writeSuccess(w, http.StatusCreated, map[string]any{"id": id}, "Liqueur registered successfully")
}

// handleLiqueurDetail returns a single liqueur document by exact name.
func (s *Server) handleLiqueurDetail(w http.ResponseWriter, r *http.Request) {
	doc, err := s.repos[catalog.KindLiqueur].GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, doc, "Successfully retrieved liqueur")
}

// handleLiqueurSearch searches liqueurs with optional filters and pagination.
func (s *Server) handleLiqueurSearch(w http.ResponseWriter, r *http.Request) {
	minVolume, err := queryFloat(r, "minVolume")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	maxVolume, err := queryFloat(r, "maxVolume")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	minABV, err := queryFloat(r, "minAbv")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	maxABV, err := queryFloat(r, "maxAbv")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	search := catalog.LiqueurSearch{
		Name:            query.Get("name"),
		Brand:           query.Get("brand"),
		Taste:           queryList(r, "taste"),
		Kind:            query.Get("kind"),
		SubKind:         query.Get("subKind"),
		MainIngredients: queryList(r, "mainIngredients"),
		MinVolume:       minVolume,
		MaxVolume:       maxVolume,
		MinABV:          minABV,
		MaxABV:          maxABV,
		OriginNation:    query.Get("originNation"),
		OriginLocation:  query.Get("originLocation"),
		Description:     query.Get("description"),
		Pagination:      parsePagination(r),
	}

	result, err := s.repos[catalog.KindLiqueur].Search(r.Context(), search.Filter(), search.Pagination)
	if err != nil {
		s.logger.Error("liqueur search failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result, "Successfully searched liqueur")
}

// handleLiqueurUpdate replaces a liqueur document and its image.
func (s *Server) handleLiqueurUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	doc, err := liqueurFromForm(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.metadata.Validate(r.Context(), catalog.KindLiqueur, nil, doc.Taste, nil); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.replaceDocument(r, catalog.KindLiqueur, id, doc); err != nil {
		s.logger.Error("liqueur update failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("liqueur updated", "id", id, "name", doc.Name)
	s.recordAudit(r, audit.ActionUpdate, string(catalog.KindLiqueur), id, map[string]any{"name": doc.Name})
	w.WriteHeader(http.StatusNoContent)
}

// handleLiqueurRemove deletes a liqueur document and its image.
func (s *Server) handleLiqueurRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentId")

	if err := s.removeDocument(r, catalog.KindLiqueur, id); err != nil {
		s.logger.Error("liqueur remove failed", "id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	s.logger.Info("liqueur removed", "id", id)
	s.recordAudit(r, audit.ActionRemove, string(catalog.KindLiqueur), id, nil)
	writeSuccess(w, http.StatusOK, nil, "Liqueur removed successfully")
}

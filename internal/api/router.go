package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dongju93/cocktail-maker/internal/auth"
)

// buildRouter constructs the chi router with all API routes.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.recoveryMiddleware)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	anyUser := s.requireRoles(auth.RoleAdmin, auth.RoleUser)
	adminOnly := s.requireRoles(auth.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication.
		r.Post("/signup", s.handleSignUp)
		r.Post("/signin", s.handleSignIn)
		r.Post("/refresh-token", s.handleRefreshToken)
		r.With(anyUser).Get("/my-role", s.handleMyRole)
		r.With(adminOnly).Post("/publish-api-key", s.handlePublishAPIKey)

		// Health.
		r.Get("/health", s.handleHealth)

		// Audit trail.
		r.With(adminOnly).Get("/audit-logs", s.handleAuditList)

		// Spirits.
		r.Route("/spirits", func(r chi.Router) {
			r.With(adminOnly).Post("/", s.handleSpiritsRegister)
			r.With(anyUser).Get("/", s.handleSpiritsSearch)
			r.Get("/{name}", s.handleSpiritsDetail)
			r.With(adminOnly).Put("/{documentId}", s.handleSpiritsUpdate)
			r.With(adminOnly).Delete("/{documentId}", s.handleSpiritsRemove)
		})

		// Liqueur.
		r.Route("/liqueur", func(r chi.Router) {
			r.With(adminOnly).Post("/", s.handleLiqueurRegister)
			r.With(anyUser).Get("/", s.handleLiqueurSearch)
			r.Get("/{name}", s.handleLiqueurDetail)
			r.With(adminOnly).Put("/{documentId}", s.handleLiqueurUpdate)
			r.With(adminOnly).Delete("/{documentId}", s.handleLiqueurRemove)
		})

		// Ingredient.
		r.Route("/ingredient", func(r chi.Router) {
			r.With(adminOnly).Post("/", s.handleIngredientRegister)
			r.With(anyUser).Get("/", s.handleIngredientSearch)
			r.Get("/{name}", s.handleIngredientDetail)
			r.With(adminOnly).Put("/{documentId}", s.handleIngredientUpdate)
			r.With(adminOnly).Delete("/{documentId}", s.handleIngredientRemove)
		})

		// Cocktail.
		r.Route("/cocktail", func(r chi.Router) {
			r.With(adminOnly).Post("/", s.handleCocktailRegister)
			r.With(anyUser).Get("/", s.handleCocktailSearch)
			r.Get("/{name}", s.handleCocktailDetail)
			r.With(adminOnly).Put("/{documentId}", s.handleCocktailUpdate)
			r.With(adminOnly).Delete("/{documentId}", s.handleCocktailRemove)
		})

		// Tasting-note metadata vocabulary.
		r.Route("/metadata", func(r chi.Router) {
			r.With(adminOnly).Post("/{kind}/{category}", s.handleMetadataCreate)
			r.With(anyUser).Get("/{kind}/{category}", s.handleMetadataList)
			r.With(adminOnly).Delete("/{id}", s.handleMetadataDelete)
		})
	})

	return r
}

// handleHealth reports liveness plus the health of the backing stores.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":  "healthy",
		"version": s.version,
	}

	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			health["status"] = "degraded"
			health["sqlite"] = "unreachable"
		} else {
			health["sqlite"] = "ok"
		}
	}

	if s.mongo != nil {
		if err := s.mongo.HealthCheck(r.Context()); err != nil {
			health["status"] = "degraded"
			health["mongodb"] = "unreachable"
		} else {
			health["mongodb"] = "ok"
		}
	}

	code := http.StatusOK
	if health["status"] != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

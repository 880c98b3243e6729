// Package api provides the HTTP REST API for the cocktail-maker backend.
//
// It exposes authentication (sign-up, sign-in, token refresh, API key
// publishing) and catalog management for spirits, liqueurs, ingredients,
// cocktail recipes, and the tasting-note metadata vocabulary.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/auth"
	"github.com/dongju93/cocktail-maker/internal/catalog"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/database"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/logging"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/mongodb"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   *config.Config
	Logger   *logging.Logger
	Users    *auth.UserRepository
	Issuer   *auth.Issuer
	Verifier *auth.Verifier
	KeyGen   *auth.KeyGenerator // optional: publish-api-key returns 503 when nil
	Repos    map[catalog.Kind]*catalog.Repository
	Metadata *catalog.MetadataStore
	Audit    audit.Repository
	Images   *catalog.ImageStore
	DB       *database.DB
	Mongo    *mongodb.Client
	Version  string
}

// Server is the HTTP API server for the cocktail-maker backend.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	users    *auth.UserRepository
	issuer   *auth.Issuer
	verifier *auth.Verifier
	keyGen   *auth.KeyGenerator
	repos    map[catalog.Kind]*catalog.Repository
	metadata *catalog.MetadataStore
	audit    audit.Repository
	images   *catalog.ImageStore
	db       *database.DB
	mongo    *mongodb.Client
	version  string
	server   *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.Issuer == nil || deps.Verifier == nil {
		return nil, fmt.Errorf("token issuer and verifier are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("catalog repositories are required")
	}

	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		users:    deps.Users,
		issuer:   deps.Issuer,
		verifier: deps.Verifier,
		keyGen:   deps.KeyGen,
		repos:    deps.Repos,
		metadata: deps.Metadata,
		audit:    deps.Audit,
		images:   deps.Images,
		db:       deps.DB,
		mongo:    deps.Mongo,
		version:  deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// The HTTP listener runs in a background goroutine; the server can be
// stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.API.Host, s.cfg.API.Port),
		Handler:           router,
		ReadTimeout:       s.cfg.GetReadTimeout(),
		ReadHeaderTimeout: s.cfg.GetReadTimeout(),
		WriteTimeout:      s.cfg.GetWriteTimeout(),
		IdleTimeout:       s.cfg.GetIdleTimeout(),
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server started", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

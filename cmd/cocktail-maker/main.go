// Cocktail Maker - Spirits and Cocktail Catalog Backend
//
// This is the main entry point for the cocktail-maker API server.
// It catalogs spirits, liqueurs, ingredients, and cocktail recipes,
// with JWT-based authentication and role-based access control.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/dongju93/cocktail-maker/migrations"

	"github.com/dongju93/cocktail-maker/internal/api"
	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/auth"
	"github.com/dongju93/cocktail-maker/internal/catalog"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/database"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/logging"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/mongodb"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting cocktail-maker",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the metadata database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Connect to MongoDB
	mongoClient, err := mongodb.Connect(ctx, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	defer func() {
		log.Info("closing MongoDB connection")
		if closeErr := mongoClient.Close(context.Background()); closeErr != nil {
			log.Error("error closing MongoDB", "error", closeErr)
		}
	}()
	log.Info("MongoDB connected", "database", cfg.MongoDB.Database)

	// Set up authentication
	users := auth.NewUserRepository(mongoClient)
	if indexErr := users.EnsureIndexes(ctx); indexErr != nil {
		return fmt.Errorf("ensuring user indexes: %w", indexErr)
	}

	issuer, err := auth.NewIssuer(cfg.Security.JWT, users)
	if err != nil {
		return fmt.Errorf("creating token issuer: %w", err)
	}
	verifier, err := auth.NewVerifier(cfg.Security.JWT)
	if err != nil {
		return fmt.Errorf("creating token verifier: %w", err)
	}

	// API key generation is optional; the endpoint reports unavailable
	// when the master key is not configured.
	var keyGen *auth.KeyGenerator
	if cfg.Security.APIKeys.MasterKey != "" {
		keyGen, err = auth.NewKeyGenerator(cfg.Security.APIKeys)
		if err != nil {
			return fmt.Errorf("creating api key generator: %w", err)
		}
	} else {
		log.Info("api key generator disabled")
	}

	// Catalog repositories, one per document kind
	repos := map[catalog.Kind]*catalog.Repository{
		catalog.KindSpirits:    catalog.NewRepository(mongoClient, catalog.KindSpirits),
		catalog.KindLiqueur:    catalog.NewRepository(mongoClient, catalog.KindLiqueur),
		catalog.KindIngredient: catalog.NewRepository(mongoClient, catalog.KindIngredient),
		catalog.KindCocktail:   catalog.NewRepository(mongoClient, catalog.KindCocktail),
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:   cfg,
		Logger:   log,
		Users:    users,
		Issuer:   issuer,
		Verifier: verifier,
		KeyGen:   keyGen,
		Repos:    repos,
		Metadata: catalog.NewMetadataStore(db),
		Audit:    audit.NewSQLiteRepository(db.DB),
		Images:   catalog.NewImageStore(cfg.Images.Root),
		DB:       db,
		Mongo:    mongoClient,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("cocktail-maker stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses COCKTAIL_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("COCKTAIL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

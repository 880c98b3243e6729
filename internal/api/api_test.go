package api

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dongju93/cocktail-maker/internal/audit"
	"github.com/dongju93/cocktail-maker/internal/auth"
	"github.com/dongju93/cocktail-maker/internal/catalog"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/database"
	"github.com/dongju93/cocktail-maker/internal/infrastructure/logging"
	_ "github.com/dongju93/cocktail-maker/migrations" // register embedded migrations
)

// fakeRolesLookup returns canned roles for token refresh tests.
type fakeRolesLookup struct {
	roles map[string][]auth.Role
}

func (f *fakeRolesLookup) GetRoles(_ context.Context, userID string) ([]auth.Role, error) {
	roles, ok := f.roles[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return roles, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:          "test-secret-at-least-32-characters-long",
				Algorithm:       "HS256",
				Issuer:          "cocktail-maker.co.kr/api",
				Audience:        "cocktail-maker.co.kr",
				AccessTokenTTL:  15,
				RefreshTokenTTL: 7,
			},
			APIKeys: config.APIKeyConfig{
				MasterKey:      "6d6173746572206b6579206d6173746572206b6579",
				PersistentSalt: "70657273697374656e742073616c74",
			},
		},
	}
}

func quietLogger() *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// newTestServer builds a server with real token machinery, a migrated
// temporary metadata database, and a throwaway image root. Document
// repositories are left nil; tests that need them are exercised against
// a running MongoDB elsewhere.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := testConfig()

	lookup := &fakeRolesLookup{roles: map[string][]auth.Role{
		"admin1": {auth.RoleAdmin},
		"user01": {auth.RoleUser},
	}}

	issuer, err := auth.NewIssuer(cfg.Security.JWT, lookup)
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}
	verifier, err := auth.NewVerifier(cfg.Security.JWT)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	keyGen, err := auth.NewKeyGenerator(cfg.Security.APIKeys)
	if err != nil {
		t.Fatalf("NewKeyGenerator() error = %v", err)
	}

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return &Server{
		cfg:      cfg,
		logger:   quietLogger(),
		issuer:   issuer,
		verifier: verifier,
		keyGen:   keyGen,
		metadata: catalog.NewMetadataStore(db),
		audit:    audit.NewSQLiteRepository(db.DB),
		images:   catalog.NewImageStore(t.TempDir()),
		db:       db,
		version:  "test",
	}
}

// mintAccessToken issues a valid access token for a canned user.
func mintAccessToken(t *testing.T, s *Server, userID string, roles []auth.Role) string {
	t.Helper()

	pair, err := s.issuer.MintPair(userID, roles)
	if err != nil {
		t.Fatalf("MintPair() error = %v", err)
	}
	return pair.AccessToken
}

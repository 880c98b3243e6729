package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mongodb:
  uri: "mongodb://localhost:27017"
  database: "cocktail-test"
api:
  host: "0.0.0.0"
  port: 8000
security:
  jwt:
    secret: "test-secret-key-at-least-32-chars!"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.MongoDB.Database != "cocktail-test" {
		t.Errorf("MongoDB.Database = %q, want %q", cfg.MongoDB.Database, "cocktail-test")
	}

	// Issuer/audience fall back to defaults when not set in the file
	if cfg.Security.JWT.Issuer != "cocktail-maker.co.kr/api" {
		t.Errorf("Security.JWT.Issuer = %q, want default issuer", cfg.Security.JWT.Issuer)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	// validJWTSecret is a secret that meets the 32-character minimum requirement
	validJWTSecret := "test-secret-key-at-least-32-chars!"

	base := func() *Config {
		cfg := defaultConfig()
		cfg.Security.JWT.Secret = validJWTSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing mongodb uri",
			mutate:  func(c *Config) { c.MongoDB.URI = "" },
			wantErr: true,
		},
		{
			name:    "invalid port low",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port high",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing JWT secret",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "" },
			wantErr: true,
		},
		{
			name:    "JWT secret too short",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "short" },
			wantErr: true,
		},
		{
			name:    "non-HMAC algorithm",
			mutate:  func(c *Config) { c.Security.JWT.Algorithm = "RS256" },
			wantErr: true,
		},
		{
			name:    "missing issuer",
			mutate:  func(c *Config) { c.Security.JWT.Issuer = "" },
			wantErr: true,
		},
		{
			name:    "zero access token TTL",
			mutate:  func(c *Config) { c.Security.JWT.AccessTokenTTL = 0 },
			wantErr: true,
		},
		{
			name:    "non-hex api key master key",
			mutate:  func(c *Config) { c.Security.APIKeys.MasterKey = "not-hex" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		API: APIConfig{
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 45,
				Idle:  60,
			},
		},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}

	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}

	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("COCKTAIL_DATABASE_PATH", "/custom/path.db")
	t.Setenv("COCKTAIL_MONGODB_URI", "mongodb://mongo.example.com:27017")
	t.Setenv("COCKTAIL_API_HOST", "192.168.1.1")
	t.Setenv("COCKTAIL_API_PORT", "9000")
	t.Setenv("COCKTAIL_JWT_SECRET", "jwt-secret")
	t.Setenv("COCKTAIL_API_MASTER_KEY", "deadbeef")

	applyEnvOverrides(cfg)

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}

	if cfg.MongoDB.URI != "mongodb://mongo.example.com:27017" {
		t.Errorf("MongoDB.URI = %q, want override", cfg.MongoDB.URI)
	}

	if cfg.API.Host != "192.168.1.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "192.168.1.1")
	}

	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}

	if cfg.Security.JWT.Secret != "jwt-secret" {
		t.Errorf("Security.JWT.Secret = %q, want %q", cfg.Security.JWT.Secret, "jwt-secret")
	}

	if cfg.Security.APIKeys.MasterKey != "deadbeef" {
		t.Errorf("Security.APIKeys.MasterKey = %q, want %q", cfg.Security.APIKeys.MasterKey, "deadbeef")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path == "" {
		t.Error("defaultConfig should have non-empty Database.Path")
	}

	if cfg.MongoDB.Database != "cocktail-db" {
		t.Errorf("defaultConfig MongoDB.Database = %q, want %q", cfg.MongoDB.Database, "cocktail-db")
	}

	if cfg.API.Port != 8000 {
		t.Errorf("defaultConfig API.Port = %d, want 8000", cfg.API.Port)
	}

	if cfg.Security.JWT.AccessTokenTTL != 15 {
		t.Errorf("defaultConfig AccessTokenTTL = %d, want 15", cfg.Security.JWT.AccessTokenTTL)
	}

	if cfg.Security.JWT.RefreshTokenTTL != 7 {
		t.Errorf("defaultConfig RefreshTokenTTL = %d, want 7", cfg.Security.JWT.RefreshTokenTTL)
	}
}

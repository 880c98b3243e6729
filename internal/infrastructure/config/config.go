package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the cocktail-maker backend.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	Images   ImagesConfig   `yaml:"images"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// DatabaseConfig contains SQLite metadata store settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MongoDBConfig contains document store connection settings.
type MongoDBConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	// ConnectTimeout is the server selection timeout in seconds.
	ConnectTimeout int `yaml:"connect_timeout"`
}

// ImagesConfig contains local image file store settings.
type ImagesConfig struct {
	// Root is the directory under which document images are written,
	// laid out as <root>/<kind>/<document-id>/<field>.png.
	Root string `yaml:"root"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT     JWTConfig    `yaml:"jwt"`
	APIKeys APIKeyConfig `yaml:"api_keys"`
}

// JWTConfig contains token issuance and verification settings.
//
// Secret, issuer, and audience are deployment constants checked exactly by
// the verifier. Algorithm names an HMAC signing method (HS256/HS384/HS512).
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Algorithm string `yaml:"algorithm"`
	Issuer    string `yaml:"issuer"`
	Audience  string `yaml:"audience"`
	// AccessTokenTTL is the access token lifetime in minutes.
	AccessTokenTTL int `yaml:"access_token_ttl"`
	// RefreshTokenTTL is the refresh token lifetime in days.
	RefreshTokenTTL int `yaml:"refresh_token_ttl"`
}

// APIKeyConfig contains the deterministic API key generator inputs.
// Both values are hex-encoded bytes.
type APIKeyConfig struct {
	MasterKey      string `yaml:"master_key"`
	PersistentSalt string `yaml:"persistent_salt"`
}

// MasterKeyBytes decodes the hex-encoded master key.
func (c APIKeyConfig) MasterKeyBytes() ([]byte, error) {
	b, err := hex.DecodeString(c.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("decoding api key master key: %w", err)
	}
	return b, nil
}

// PersistentSaltBytes decodes the hex-encoded persistent salt.
func (c APIKeyConfig) PersistentSaltBytes() ([]byte, error) {
	b, err := hex.DecodeString(c.PersistentSalt)
	if err != nil {
		return nil, fmt.Errorf("decoding api key salt: %w", err)
	}
	return b, nil
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: COCKTAIL_SECTION_KEY
// For example: COCKTAIL_DATABASE_PATH, COCKTAIL_JWT_SECRET
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8000,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/metadata.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MongoDB: MongoDBConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "cocktail-db",
			ConnectTimeout: 5,
		},
		Images: ImagesConfig{
			Root: "./data/images",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				Algorithm:       "HS256",
				Issuer:          "cocktail-maker.co.kr/api",
				Audience:        "cocktail-maker.co.kr",
				AccessTokenTTL:  15,
				RefreshTokenTTL: 7,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: COCKTAIL_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database / document store
	if v := os.Getenv("COCKTAIL_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("COCKTAIL_MONGODB_URI"); v != "" {
		cfg.MongoDB.URI = v
	}
	if v := os.Getenv("COCKTAIL_MONGODB_DATABASE"); v != "" {
		cfg.MongoDB.Database = v
	}

	// API
	if v := os.Getenv("COCKTAIL_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("COCKTAIL_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Images
	if v := os.Getenv("COCKTAIL_IMAGES_ROOT"); v != "" {
		cfg.Images.Root = v
	}

	// Security - always override secrets in production
	if v := os.Getenv("COCKTAIL_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
	if v := os.Getenv("COCKTAIL_API_MASTER_KEY"); v != "" {
		cfg.Security.APIKeys.MasterKey = v
	}
	if v := os.Getenv("COCKTAIL_API_SALT"); v != "" {
		cfg.Security.APIKeys.PersistentSalt = v
	}
}

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MongoDB.URI == "" {
		errs = append(errs, "mongodb.uri is required")
	}
	if c.MongoDB.Database == "" {
		errs = append(errs, "mongodb.database is required")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// JWT secret is REQUIRED. An empty or weak secret would allow anyone
	// to forge access tokens and bypass role checks entirely.
	const minJWTSecretLength = 32
	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set COCKTAIL_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters for adequate security")
	}

	switch c.Security.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, "security.jwt.algorithm must be one of HS256, HS384, HS512")
	}

	if c.Security.JWT.Issuer == "" {
		errs = append(errs, "security.jwt.issuer is required")
	}
	if c.Security.JWT.Audience == "" {
		errs = append(errs, "security.jwt.audience is required")
	}
	if c.Security.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, "security.jwt.access_token_ttl must be positive")
	}
	if c.Security.JWT.RefreshTokenTTL <= 0 {
		errs = append(errs, "security.jwt.refresh_token_ttl must be positive")
	}

	if c.Security.APIKeys.MasterKey != "" {
		if _, err := c.Security.APIKeys.MasterKeyBytes(); err != nil {
			errs = append(errs, "security.api_keys.master_key must be hex-encoded")
		}
	}
	if c.Security.APIKeys.PersistentSalt != "" {
		if _, err := c.Security.APIKeys.PersistentSaltBytes(); err != nil {
			errs = append(errs, "security.api_keys.persistent_salt must be hex-encoded")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// AccessTokenDuration returns the access token lifetime as a Duration.
func (c JWTConfig) AccessTokenDuration() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Minute
}

// RefreshTokenDuration returns the refresh token lifetime as a Duration.
func (c JWTConfig) RefreshTokenDuration() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * 24 * time.Hour
}

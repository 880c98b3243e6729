package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/config"
)

// Default timeouts for document store operations.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultHealthTimeout  = 5 * time.Second
)

// Sentinel errors for document store operations.
var (
	// ErrConnectionFailed indicates the initial connection or ping failed.
	ErrConnectionFailed = errors.New("mongodb connection failed")
)

// Client wraps a MongoDB connection scoped to a single database.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect establishes a connection to MongoDB.
//
// It performs the following:
//  1. Applies connection options from config (URI, server selection timeout)
//  2. Connects the driver
//  3. Verifies connectivity with a primary ping
//
// Parameters:
//   - ctx: Context for cancellation (used for connect and ping)
//   - cfg: MongoDB configuration from config.yaml
//
// Returns:
//   - *Client: Connected client scoped to the configured database
//   - error: If the connection or ping fails
func Connect(ctx context.Context, cfg config.MongoDBConfig) (*Client, error) {
	connectTimeout := defaultConnectTimeout
	if cfg.ConnectTimeout > 0 {
		connectTimeout = time.Duration(cfg.ConnectTimeout) * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(connectTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}

	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// Collection returns a handle to the named collection in the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Database returns the underlying database handle.
func (c *Client) Database() *mongo.Database {
	return c.database
}

// HealthCheck verifies the MongoDB connection is alive with an active ping.
func (c *Client) HealthCheck(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultHealthTimeout)
	defer cancel()

	if err := c.client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb health check: %w", err)
	}
	return nil
}

// Close gracefully disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting mongodb: %w", err)
	}
	return nil
}

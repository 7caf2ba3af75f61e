// Package store persists short-URL mappings behind a backend-agnostic
// interface. Backends are full primary stores, selected by configuration.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/K1ssSh0t/url-shortener/models"
)

// ErrNotFound is returned when no mapping exists for a short code.
var ErrNotFound = errors.New("store: mapping not found")

// Store is the persistence contract shared by all backends.
type Store interface {
	// Create persists a new mapping. Codes are not checked against
	// existing mappings.
	Create(ctx context.Context, m *models.Mapping) error
	// Find returns the mapping for shortCode, or ErrNotFound.
	Find(ctx context.Context, shortCode string) (*models.Mapping, error)
	// IncrementClicks adds one click to the mapping. A mapping that no
	// longer exists is not an error.
	IncrementClicks(ctx context.Context, shortCode string) error
	// UpdateURL replaces the destination URL. Returns ErrNotFound when
	// no mapping matched.
	UpdateURL(ctx context.Context, shortCode, url string) error
	// Delete removes the mapping. Returns ErrNotFound when no mapping
	// matched.
	Delete(ctx context.Context, shortCode string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	// Driver is one of "postgres", "sqlite3", "redis" or "memory".
	Driver string
	// DSN is the connection string for the SQL drivers.
	DSN string
	// RedisAddr is the host:port of the redis server.
	RedisAddr string
	// AutoMigrate applies pending schema migrations on startup (SQL
	// drivers only).
	AutoMigrate bool
}

// Open builds the backend selected by cfg.Driver.
func Open(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "postgres", "sqlite3":
		return NewSQL(cfg.Driver, cfg.DSN, cfg.AutoMigrate)
	case "redis":
		return NewRedis(cfg.RedisAddr), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

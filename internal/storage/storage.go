// Package storage provides durable key-value byte stores for the catalog.
//
// The catalog is a single JSON document written in full after every
// mutation, so a backend only needs whole-value Get and Put on a key.
// Three backends are available:
//
//   - bolt: an embedded bbolt file (default, no external services)
//   - postgres: a kv table in PostgreSQL via pgxpool
//   - memory: process-local, for tests and demos
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable key-value byte store.
// Put replaces the whole value for key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string // bolt, postgres or memory
	Path        string // bbolt file path
	DatabaseURL string // PostgreSQL connection string
	MaxConns    int    // PostgreSQL pool size
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverBolt, "":
		b, err := OpenBolt(opts.Path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case DriverPostgres:
		p, err := OpenPostgres(ctx, opts.DatabaseURL, opts.MaxConns)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}

// Package storage contains the storage-agnostic contracts for persisting
// canonical record sets: the Repository interface, a kind-keyed factory that
// concrete backends register with at init time, and the batched loader.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Column is one destination column with its logical type ("text", "real",
// "timestamp", "bool"). Backends map logical types onto their own DDL.
type Column struct {
	Name string
	Kind string
}

// Table describes one destination table: name, ordered columns, and the
// columns that receive lookup indexes (primary keys on customers/products,
// both foreign keys on orders).
type Table struct {
	Name    string
	Columns []Column
	Indexes []string
}

// Repository is the sink contract. Replace semantics: EnsureTable drops any
// existing table of that name and recreates it empty, so each run fully
// replaces the previous canonical data.
type Repository interface {
	EnsureTable(ctx context.Context, t Table) error
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	CreateIndexes(ctx context.Context, t Table) error
	Close()
}

// Config selects and parameterizes a backend.
type Config struct {
	Kind string // "sqlite" | "postgres"
	DSN  string
}

// Factory opens a Repository for one storage kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs a factory for the given kind. Called from backend
// packages' init functions; the storage/all package wires in every built-in
// backend via blank imports.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// Open constructs the Repository selected by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}

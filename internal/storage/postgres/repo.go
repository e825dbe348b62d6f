// Package postgres implements a Postgres storage.Repository using pgx v5.
// Rows land via the native COPY protocol (pgx CopyFrom), which is the fastest
// bulk path for batch loads of this shape.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reconcile/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg.DSN)
	})
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// Open connects a pgx pool using the provided DSN.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() { r.pool.Close() }

func sqlType(kind string) string {
	switch kind {
	case "real":
		return "double precision"
	case "timestamp":
		return "timestamp"
	case "bool":
		return "boolean"
	default:
		return "text"
	}
}

// EnsureTable drops and recreates the destination table (replace semantics).
func (r *Repository) EnsureTable(ctx context.Context, t storage.Table) error {
	if _, err := r.pool.Exec(ctx, "DROP TABLE IF EXISTS "+pgIdent(t.Name)); err != nil {
		return fmt.Errorf("postgres: drop table: %w", err)
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", pgIdent(c.Name), sqlType(c.Kind))
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", pgIdent(t.Name), strings.Join(cols, ", "))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

// CopyFrom streams the rows through the COPY protocol.
func (r *Repository) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", table, err)
	}
	return n, nil
}

// CreateIndexes creates the table's lookup indexes (idempotent).
func (r *Repository) CreateIndexes(ctx context.Context, t storage.Table) error {
	for _, col := range t.Indexes {
		ddl := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			t.Name, col, pgIdent(t.Name), pgIdent(col))
		if _, err := r.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("postgres: create index on %s.%s: %w", t.Name, col, err)
		}
	}
	return nil
}

// pgIdent quotes a (possibly schema-qualified) identifier.
func pgIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}

// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. It performs batched INSERTs inside a transaction; SQLite has
// no dedicated bulk-load API like Postgres COPY, but transactions keep
// performance acceptable for batch volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"reconcile/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg.DSN)
	})
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens a SQLite database. The DSN is passed to database/sql directly,
// e.g. "techcorp_cleaned.db" or "file:techcorp.db?cache=shared".
func Open(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() { r.db.Close() }

// sqlType maps logical column kinds onto SQLite storage classes. Timestamps
// are stored as text; booleans as 0/1 integers.
func sqlType(kind string) string {
	switch kind {
	case "real":
		return "REAL"
	case "bool":
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// EnsureTable drops any previous table of the same name and recreates it,
// giving each run full-replace semantics.
func (r *Repository) EnsureTable(ctx context.Context, t storage.Table) error {
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+t.Name); err != nil {
		return fmt.Errorf("sqlite: drop table: %w", err)
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", c.Name, sqlType(c.Kind))
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, strings.Join(cols, ", "))
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("sqlite: create table: %w", err)
	}
	return nil
}

// CopyFrom inserts the rows inside a single transaction with a prepared
// statement. Returns the number of rows inserted.
func (r *Repository) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		bound := make([]any, len(row))
		for i, v := range row {
			bound[i] = bindValue(v)
		}
		if _, err := stmt.ExecContext(ctx, bound...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// CreateIndexes creates the table's lookup indexes (idempotent).
func (r *Repository) CreateIndexes(ctx context.Context, t storage.Table) error {
	for _, col := range t.Indexes {
		ddl := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)", t.Name, col, t.Name, col)
		if _, err := r.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("sqlite: create index on %s.%s: %w", t.Name, col, err)
		}
	}
	return nil
}

// bindValue converts canonical in-memory values to SQLite-friendly bindings:
// timestamps become "2006-01-02 15:04:05" text and booleans become 0/1.
func bindValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}

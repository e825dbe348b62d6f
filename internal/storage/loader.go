package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
)

// Load replaces the destination table with the given rows: DDL first, then
// batched CopyFrom calls, then the lookup indexes. Indexes are created after
// the data lands so the backend builds them once.
//
// A concise progress line is logged per flushed batch with running totals and
// instantaneous rows/sec.
func Load(ctx context.Context, repo Repository, t Table, rows [][]any, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	if err := repo.EnsureTable(ctx, t); err != nil {
		return 0, fmt.Errorf("ensure table %s: %w", t.Name, err)
	}

	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c.Name
	}

	var (
		total   int64
		batches int64
		last    = time.Now()
	)
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := repo.CopyFrom(ctx, t.Name, columns, rows[start:end])
		total += n
		if err != nil {
			log.Printf("loader: table=%s insert failed after=%d total=%d err=%v", t.Name, n, total, err)
			return total, err
		}
		batches++
		now := time.Now()
		elapsed := now.Sub(last).Seconds()
		rate := float64(n)
		if elapsed > 0 {
			rate = float64(n) / elapsed
		}
		log.Printf("loader: table=%s batch=%d rows=%s total=%s rate=%.0f rows/s",
			t.Name, batches, humanize.Comma(n), humanize.Comma(total), rate)
		last = now
	}

	if err := repo.CreateIndexes(ctx, t); err != nil {
		return total, fmt.Errorf("create indexes on %s: %w", t.Name, err)
	}
	return total, nil
}

// Package export writes canonical record sets to cleaned CSV files, the
// flat-file half of the storage collaborator contract.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reconcile/internal/reconcile"
	"reconcile/pkg/records"
)

// timeLayout matches the relational sink's text form for timestamps.
const timeLayout = "2006-01-02 15:04:05"

// WriteSet writes one canonical set to dir/<name>_cleaned.csv with a header
// row in canonical column order. The directory is created if needed and an
// existing file is replaced.
func WriteSet(dir string, set reconcile.Set) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, set.Name+"_cleaned.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(set.Columns); err != nil {
		return "", fmt.Errorf("export: write header: %w", err)
	}
	row := make([]string, len(set.Columns))
	for _, rec := range set.Records {
		for i, col := range set.Columns {
			row[i] = cell(rec.Get(col))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("export: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush %s: %w", path, err)
	}
	return path, nil
}

func cell(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(timeLayout)
	}
	return records.String(v)
}

// Package csv parses CSV sources into records. It tolerates the usual
// real-world mess: UTF-8 BOMs, unescaped quotes, variable row widths, and
// header vocabularies that need mapping onto canonical field names.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"reconcile/pkg/records"
)

// Options configures the CSV parser. All fields are optional; zero values get
// sensible defaults.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical keys. Headers not in
	// the map are lowercased with spaces collapsed to underscores.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. Safe to reuse across inputs;
// not concurrency-safe.
type Parser struct{ opt Options }

func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-row skip logging so a corrupt file cannot flood logs.
const skipLogLimit = 400

// Parse reads the header and all body rows from r. Rows that fail to parse or
// have the wrong width are skipped (soft-fail) and counted; empty cells and
// whitespace-only cells become nil. The first row is always treated as the
// header.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	h, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(h, p.opt)

	var out []records.Record
	var skipped int
	// record counts CSV records, not physical lines: a quoted field may span
	// several lines. The header is record 1.
	for record := 2; ; record++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping record %d: %v", record, err)
			}
			skipped++
			continue
		}
		if len(row) != len(headers) {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping record %d: expected %d fields, got %d", record, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[i]] = emptyToNil(val)
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys using HeaderMap when
// provided, otherwise lowercase-with-underscores. The UTF-8 BOM is stripped
// from the first cell.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok && m != "" {
				res[i] = m
				continue
			}
		}
		res[i] = strings.ReplaceAll(strings.ToLower(c), " ", "_")
	}
	return res
}

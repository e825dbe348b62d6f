package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"job": "techcorp",
		"sources": {
			"customers": {"path": "raw/customers.json", "format": "json"},
			"products":  {"path": "raw/products.json", "format": "json"},
			"orders":    {"path": "raw/orders.csv", "format": "csv", "delimiter": ";",
			              "header_map": {"Order ID": "order_id"}}
		},
		"storage": {"kind": "sqlite", "dsn": "out.db"},
		"export":  {"dir": "cleaned"},
		"batch_size": 250
	}`)

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Job != "techcorp" || p.BatchSize != 250 {
		t.Fatalf("decoded: %+v", p)
	}
	if p.Sources.Orders.Delimiter != ";" || p.Sources.Orders.HeaderMap["Order ID"] != "order_id" {
		t.Fatalf("orders source: %+v", p.Sources.Orders)
	}
	if p.Storage.Kind != "sqlite" || p.Export.Dir != "cleaned" {
		t.Fatalf("sinks: %+v %+v", p.Storage, p.Export)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `{"job": "x", "surprise": true}`)
	if _, err := Load(path); err == nil {
		t.Fatal("want decode error for unknown field")
	}
}

func TestExpandedDSN(t *testing.T) {
	t.Setenv("RECONCILE_TEST_DSN", "postgres://u:p@db/clean")
	p := Pipeline{Storage: Storage{DSN: "${RECONCILE_TEST_DSN}"}}
	if got := p.ExpandedDSN(); got != "postgres://u:p@db/clean" {
		t.Fatalf("ExpandedDSN() = %q", got)
	}
}

func validPipeline() Pipeline {
	src := func(path, format string) Source { return Source{Path: path, Format: format} }
	return Pipeline{
		Job: "techcorp",
		Sources: Sources{
			Customers: src("raw/customers.json", "json"),
			Products:  src("raw/products.json", "json"),
			Orders:    src("raw/orders.csv", "csv"),
		},
		Storage: Storage{Kind: "sqlite", DSN: "out.db"},
		Export:  Export{Dir: "cleaned"},
	}
}

func hasIssue(issues []Issue, severity IssueSeverity, pathSuffix string) bool {
	for _, i := range issues {
		if i.Severity == severity && strings.HasSuffix(i.Path, pathSuffix) {
			return true
		}
	}
	return false
}

func TestValidatePipeline(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Pipeline)
		severity IssueSeverity
		path     string
	}{
		{
			name:     "missing source path",
			mutate:   func(p *Pipeline) { p.Sources.Orders.Path = "" },
			severity: SeverityError,
			path:     "sources.orders.path",
		},
		{
			name:     "unknown format",
			mutate:   func(p *Pipeline) { p.Sources.Customers.Format = "xml" },
			severity: SeverityError,
			path:     "sources.customers.format",
		},
		{
			name:     "multi-rune delimiter",
			mutate:   func(p *Pipeline) { p.Sources.Orders.Delimiter = "||" },
			severity: SeverityError,
			path:     "sources.orders.delimiter",
		},
		{
			name:     "delimiter on json source",
			mutate:   func(p *Pipeline) { p.Sources.Products.Delimiter = ";" },
			severity: SeverityWarning,
			path:     "sources.products.delimiter",
		},
		{
			name:     "storage kind without dsn",
			mutate:   func(p *Pipeline) { p.Storage.DSN = "" },
			severity: SeverityError,
			path:     "storage.dsn",
		},
		{
			name:     "unknown storage kind",
			mutate:   func(p *Pipeline) { p.Storage.Kind = "mongo" },
			severity: SeverityError,
			path:     "storage.kind",
		},
		{
			name:     "negative batch size",
			mutate:   func(p *Pipeline) { p.BatchSize = -1 },
			severity: SeverityError,
			path:     "batch_size",
		},
		{
			name: "no output at all",
			mutate: func(p *Pipeline) {
				p.Storage = Storage{Kind: "none"}
				p.Export.Dir = ""
			},
			severity: SeverityWarning,
			path:     "export.dir",
		},
	}

	if issues := ValidatePipeline(validPipeline()); len(issues) != 0 {
		t.Fatalf("valid pipeline produced issues: %v", issues)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPipeline()
			tt.mutate(&p)
			issues := ValidatePipeline(p)
			if !hasIssue(issues, tt.severity, tt.path) {
				t.Fatalf("want %s at %s, got %v", tt.severity, tt.path, issues)
			}
		})
	}
}

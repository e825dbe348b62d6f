// Package config defines the JSON-serializable configuration model for the
// reconciliation pipeline. It is intentionally small and explicit so pipeline
// files can be loaded from disk and passed through the program without glue
// code; decoding is performed by the standard library and no third-party
// config machinery is involved.
//
// Example (trimmed):
//
//	{
//	  "job": "techcorp",
//	  "sources": {
//	    "customers": { "path": "raw/customers_messy_data.json", "format": "json" },
//	    "products":  { "path": "raw/products_inconsistent_data.json", "format": "json" },
//	    "orders":    { "path": "raw/orders_unstructured_data.csv", "format": "csv" }
//	  },
//	  "storage": { "kind": "sqlite", "dsn": "techcorp_cleaned.db" },
//	  "export":  { "dir": "cleaned" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job identifies the run; used for metrics labeling.
	Job string `json:"job"`

	// Sources names the three raw inputs, one per entity.
	Sources Sources `json:"sources"`

	// Storage selects the relational sink. Kind "none" (or empty) disables it.
	Storage Storage `json:"storage"`

	// Export configures cleaned-CSV output. An empty Dir disables it.
	Export Export `json:"export"`

	// BatchSize is the loader batch size; 0 means the default.
	BatchSize int `json:"batch_size,omitempty"`
}

// Sources holds the per-entity raw inputs.
type Sources struct {
	Customers Source `json:"customers"`
	Products  Source `json:"products"`
	Orders    Source `json:"orders"`
}

// Source describes one raw input file.
type Source struct {
	// Path is the local filesystem path to the input.
	Path string `json:"path"`

	// Format selects the parser: "json" or "csv".
	Format string `json:"format"`

	// Delimiter overrides the CSV field delimiter (single character).
	Delimiter string `json:"delimiter,omitempty"`

	// HeaderMap maps source CSV headers to canonical field names.
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Storage selects the relational sink.
type Storage struct {
	// Kind is "sqlite", "postgres", or "none".
	Kind string `json:"kind"`

	// DSN is the backend connection string. ${VAR} references are expanded
	// from the environment, so secrets stay out of pipeline files.
	DSN string `json:"dsn"`
}

// Export configures the cleaned-CSV collaborator.
type Export struct {
	Dir string `json:"dir"`
}

// Load reads and decodes a pipeline file.
func Load(path string) (Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	var p Pipeline
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return p, nil
}

// ExpandedDSN returns the storage DSN with ${VAR} environment references
// expanded.
func (p Pipeline) ExpandedDSN() string {
	return os.Expand(p.Storage.DSN, os.Getenv)
}

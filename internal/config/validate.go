package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding surfaced to users without blocking.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "sources.orders.format").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error where that is convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and logs will use the default job name",
		})
	}

	issues = append(issues, validateSource("sources.customers", p.Sources.Customers)...)
	issues = append(issues, validateSource("sources.products", p.Sources.Products)...)
	issues = append(issues, validateSource("sources.orders", p.Sources.Orders)...)
	issues = append(issues, validateStorage(p.Storage)...)

	if p.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "batch_size",
			Message:  "batch_size must not be negative",
		})
	}

	if p.Storage.Kind == "none" && p.Export.Dir == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "export.dir",
			Message:  "storage is disabled and no export dir is set; the run produces no output",
		})
	}

	return issues
}

func validateSource(path string, s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".path",
			Message:  "path must not be empty",
		})
	}

	switch s.Format {
	case "json", "csv":
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".format",
			Message:  `format is required ("json" or "csv")`,
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path + ".format",
			Message:  fmt.Sprintf("unknown format %q (want json or csv)", s.Format),
		})
	}

	if s.Delimiter != "" {
		if s.Format != "csv" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path + ".delimiter",
				Message:  "delimiter has no effect on non-csv sources",
			})
		}
		if utf8.RuneCountInString(s.Delimiter) != 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".delimiter",
				Message:  "delimiter must be a single character",
			})
		}
	}

	if s.HeaderMap != nil && s.Format != "csv" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     path + ".header_map",
			Message:  "header_map has no effect on non-csv sources",
		})
	}

	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	switch s.Kind {
	case "sqlite", "postgres":
		if strings.TrimSpace(s.DSN) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.dsn",
				Message:  fmt.Sprintf("dsn is required for storage.kind=%q", s.Kind),
			})
		}
	case "", "none":
		// relational sink disabled
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q (want sqlite, postgres, or none)", s.Kind),
		})
	}

	return issues
}

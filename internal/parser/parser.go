package parser

import (
	"io"

	"reconcile/pkg/records"
)

// Parser turns raw source bytes into loosely-typed records. The int result is
// the number of rows skipped due to unrecoverable row-level parse problems.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}

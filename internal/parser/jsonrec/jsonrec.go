// Package jsonrec parses JSON sources into records. It accepts the two shapes
// upstream exports actually arrive in: a top-level array of objects, or a
// stream of objects (NDJSON). Numbers decode as json.Number so the normalizer
// decides how numeric values are typed.
package jsonrec

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"reconcile/pkg/records"
)

type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse reads all records from r. Non-object elements inside an array are
// skipped and counted; a non-object, non-array top-level value is an error.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("json: decode root: %w", err)
	}

	var out []records.Record
	var skipped int

	switch v := root.(type) {
	case []any:
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				log.Printf("json: skipping element %d: not an object (%T)", i, elem)
				skipped++
				continue
			}
			out = append(out, records.Record(obj))
		}
	case map[string]any:
		out = append(out, records.Record(v))
		// Trailing objects (NDJSON after the first).
		for {
			var next any
			if err := dec.Decode(&next); err != nil {
				if err == io.EOF {
					break
				}
				return out, skipped, fmt.Errorf("json: decode object: %w", err)
			}
			obj, ok := next.(map[string]any)
			if !ok {
				skipped++
				continue
			}
			out = append(out, records.Record(obj))
		}
	default:
		return nil, 0, fmt.Errorf("json: unsupported top-level type %T", v)
	}

	return out, skipped, nil
}

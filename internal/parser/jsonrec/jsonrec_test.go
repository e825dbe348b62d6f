package jsonrec

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseArray(t *testing.T) {
	data := `[{"customer_id": 1042, "email": "a@b.com"}, {"customer_id": "1043"}]`
	recs, skipped, err := NewParser().Parse(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 || len(recs) != 2 {
		t.Fatalf("recs=%d skipped=%d", len(recs), skipped)
	}
	// Numbers arrive as json.Number, not float64.
	if _, ok := recs[0]["customer_id"].(json.Number); !ok {
		t.Fatalf("customer_id = %T, want json.Number", recs[0]["customer_id"])
	}
}

func TestParseNDJSON(t *testing.T) {
	data := "{\"a\":1}\n{\"a\":2}\n"
	recs, _, err := NewParser().Parse(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
}

func TestParseSkipsNonObjectElements(t *testing.T) {
	data := `[{"a":1}, 42, {"a":2}]`
	recs, skipped, err := NewParser().Parse(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || skipped != 1 {
		t.Fatalf("recs=%d skipped=%d", len(recs), skipped)
	}
}

func TestParseRejectsScalarRoot(t *testing.T) {
	if _, _, err := NewParser().Parse(strings.NewReader(`"just a string"`)); err == nil {
		t.Fatal("scalar root should error")
	}
}

func TestParseEmptyInput(t *testing.T) {
	recs, skipped, err := NewParser().Parse(strings.NewReader(""))
	if err != nil || len(recs) != 0 || skipped != 0 {
		t.Fatalf("recs=%d skipped=%d err=%v", len(recs), skipped, err)
	}
}

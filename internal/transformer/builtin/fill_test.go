package builtin

import (
	"testing"

	"reconcile/pkg/records"
)

func TestFillDefaults(t *testing.T) {
	in := []records.Record{
		{"segment": nil, "address": "12 Main St"},
		{"address": nil}, // segment absent entirely
	}
	f := Fill{Defaults: map[string]any{"segment": "general", "address": "not provided"}}
	out := f.Apply(in)
	if out[0]["segment"] != "general" {
		t.Fatalf("segment = %v", out[0]["segment"])
	}
	if out[0]["address"] != "12 Main St" {
		t.Fatal("default overwrote a non-null value")
	}
	if out[1]["segment"] != "general" || out[1]["address"] != "not provided" {
		t.Fatalf("absent fields not filled: %#v", out[1])
	}
}

func TestModeFill(t *testing.T) {
	in := []records.Record{
		{"preferred_payment": "card"},
		{"preferred_payment": "card"},
		{"preferred_payment": "cash"},
		{"preferred_payment": nil},
	}
	out := ModeFill{Fields: []string{"preferred_payment"}}.Apply(in)
	if out[3]["preferred_payment"] != "card" {
		t.Fatalf("mode fill = %v, want card", out[3]["preferred_payment"])
	}
}

func TestModeFillTieBreaksOnSmallestValue(t *testing.T) {
	// Input order must not matter: the tie resolves to the smallest value.
	in := []records.Record{
		{"zip_code": "20002"},
		{"zip_code": "10001"},
		{"zip_code": nil},
	}
	out := ModeFill{Fields: []string{"zip_code"}}.Apply(in)
	if out[2]["zip_code"] != "10001" {
		t.Fatalf("tie should break on the smallest value, got %v", out[2]["zip_code"])
	}
}

func TestModeFillAllNull(t *testing.T) {
	in := []records.Record{{"zip_code": nil}, {"zip_code": nil}}
	out := ModeFill{Fields: []string{"zip_code"}}.Apply(in)
	if out[0]["zip_code"] != nil {
		t.Fatalf("all-null column should stay nil, got %v", out[0]["zip_code"])
	}
}

func TestMedianFillOdd(t *testing.T) {
	in := []records.Record{
		{"rating": 1.0},
		{"rating": 5.0},
		{"rating": 3.0},
		{"rating": nil},
	}
	out := MedianFill{Fields: []string{"rating"}}.Apply(in)
	if out[3]["rating"] != 3.0 {
		t.Fatalf("median = %v, want 3", out[3]["rating"])
	}
}

func TestMedianFillEven(t *testing.T) {
	in := []records.Record{
		{"weight": 1.0},
		{"weight": 2.0},
		{"weight": 3.0},
		{"weight": 4.0},
		{"weight": nil},
	}
	out := MedianFill{Fields: []string{"weight"}}.Apply(in)
	if out[4]["weight"] != 2.5 {
		t.Fatalf("median = %v, want 2.5", out[4]["weight"])
	}
}

func TestFillFrom(t *testing.T) {
	in := []records.Record{
		{"last_updated": nil, "created_date": "2023-01-01"},
		{"last_updated": "2023-06-01", "created_date": "2023-01-01"},
	}
	out := FillFrom{Field: "last_updated", From: "created_date"}.Apply(in)
	if out[0]["last_updated"] != "2023-01-01" {
		t.Fatalf("fallback not applied: %v", out[0]["last_updated"])
	}
	if out[1]["last_updated"] != "2023-06-01" {
		t.Fatal("existing value overwritten")
	}
}

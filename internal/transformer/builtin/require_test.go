package builtin

import (
	"reflect"
	"testing"

	"reconcile/pkg/records"
)

func TestRequireDropsNullEssential(t *testing.T) {
	var rejected []Rejected
	r := Require{
		Fields: []string{"customer_id", "full_name", "email"},
		Reject: func(rej Rejected) { rejected = append(rejected, rej) },
	}
	in := []records.Record{
		{"customer_id": "1", "full_name": "Ada", "email": "a@b.com"},
		{"customer_id": "2", "full_name": "Bob", "email": nil},
		{"customer_id": "3", "full_name": "Cyd"}, // email absent
	}
	out := r.Apply(in)
	if len(out) != 1 || out[0]["customer_id"] != "1" {
		t.Fatalf("kept %d records: %#v", len(out), out)
	}
	if len(rejected) != 2 {
		t.Fatalf("rejected %d, want 2", len(rejected))
	}
	if rejected[0].Stage != "require" {
		t.Fatalf("stage = %q", rejected[0].Stage)
	}
}

func TestDropIfContactRule(t *testing.T) {
	rule := DropIf{
		Reason: "no contact channel",
		When:   func(rec records.Record) bool { return AllNull(rec, "email", "phone") },
	}
	in := []records.Record{
		{"email": nil, "phone": nil},         // dropped
		{"email": nil, "phone": "555-1234"},  // retained: contact channel exists
		{"email": "a@b.com", "phone": nil},   // retained
		{"email": "a@b.com", "phone": "55"},  // retained
	}
	out := rule.Apply(in)
	if len(out) != 3 {
		t.Fatalf("kept %d records, want 3", len(out))
	}
	if out[0]["phone"] != "555-1234" {
		t.Fatalf("phone-only customer dropped: %#v", out[0])
	}
}

func TestProject(t *testing.T) {
	in := []records.Record{
		{"customer_id": "1", "email": "a@b.com", "cust_id": "1", "noise": true},
	}
	out := Project{Columns: []string{"customer_id", "email", "segment"}}.Apply(in)
	want := records.Record{"customer_id": "1", "email": "a@b.com", "segment": nil}
	if !reflect.DeepEqual(out[0], want) {
		t.Fatalf("projection = %#v, want %#v", out[0], want)
	}
}

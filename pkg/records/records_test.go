package records

import (
	"encoding/json"
	"testing"
	"time"
)

func TestGetMissingField(t *testing.T) {
	r := Record{"a": "x"}
	if got := r.Get("missing"); got != nil {
		t.Fatalf("Get(missing) = %v, want nil", got)
	}
	if got := r.Get("a"); got != "x" {
		t.Fatalf("Get(a) = %v, want x", got)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{json.Number("1042"), "1042"},
		{float64(1042), "1042"},
		{float64(12.5), "12.5"},
		{int64(7), "7"},
		{true, "true"},
		{false, "false"},
	}
	for _, c := range cases {
		if got := String(c.in); got != c.want {
			t.Errorf("String(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStringTime(t *testing.T) {
	ts := time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)
	if got := String(ts); got != "2023-04-05T00:00:00Z" {
		t.Fatalf("String(time) = %q", got)
	}
}

func TestFloat(t *testing.T) {
	if f, ok := Float(json.Number("12.5")); !ok || f != 12.5 {
		t.Fatalf("Float(json.Number) = %v, %v", f, ok)
	}
	if f, ok := Float(float64(3)); !ok || f != 3 {
		t.Fatalf("Float(float64) = %v, %v", f, ok)
	}
	if _, ok := Float("12.5"); ok {
		t.Fatal("Float(string) should not convert")
	}
	if _, ok := Float(nil); ok {
		t.Fatal("Float(nil) should not convert")
	}
}

func TestClone(t *testing.T) {
	r := Record{"a": "x", "b": nil}
	c := r.Clone()
	c["a"] = "y"
	if r["a"] != "x" {
		t.Fatal("Clone aliases the original map")
	}
}

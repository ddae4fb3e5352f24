package intern

import "testing"

func TestTableDeduplicates(t *testing.T) {
	var tbl Table
	a := tbl.String("N.C.Add(System.Int32,System.Int32)")
	b := tbl.String("N.C.Add(System.Int32,System.Int32)")
	if &a == &b {
		t.Fatalf("expected distinct string headers, got same pointer trivially equal by test construction")
	}
	if a != b {
		t.Fatalf("expected equal values, got %q != %q", a, b)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected one interned string, got %d", tbl.Len())
	}
	tbl.String("N.C.Subtract(System.Int32,System.Int32)")
	if tbl.Len() != 2 {
		t.Fatalf("expected two interned strings, got %d", tbl.Len())
	}
}

func TestTableEmptyString(t *testing.T) {
	var tbl Table
	if got := tbl.String(""); got != "" {
		t.Fatalf("expected empty string passthrough, got %q", got)
	}
	if tbl.Len() != 0 {
		t.Fatalf("empty string must not be recorded, got len %d", tbl.Len())
	}
}

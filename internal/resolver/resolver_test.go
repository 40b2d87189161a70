package resolver

import "testing"

func TestLookupExactMatches(t *testing.T) {
	r := New(DefaultTable)

	cases := []struct {
		s    string
		want Action
	}{
		{"i", Insert},
		{"a", Append},
		{"R", Replace},
		{"x", Delete},
		{"p", PutAfter},
		{"P", PutBefore},
		{".", Repeat},
		{"dd", DeleteLine},
		{"dw", DeleteWord},
		{"yy", CopyLine},
		{"n", SearchNext},
	}
	for _, tc := range cases {
		got, status := r.Lookup(tc.s)
		if status != Resolved {
			t.Errorf("Lookup(%q) status = %v, want Resolved", tc.s, status)
			continue
		}
		if got != tc.want {
			t.Errorf("Lookup(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestLookupAliasesShareOneAction(t *testing.T) {
	r := New(DefaultTable)

	a0, s0 := r.Lookup("0")
	a1, s1 := r.Lookup("^")
	if s0 != Resolved || s1 != Resolved {
		t.Fatalf("aliases should resolve: 0=%v ^=%v", s0, s1)
	}
	if a0 != a1 || a0 != MoveLineBegin {
		t.Errorf("0 and ^ should both resolve to MoveLineBegin, got %v and %v", a0, a1)
	}
}

func TestLookupUnterminatedPrefix(t *testing.T) {
	r := New(DefaultTable)

	// "d" is a strict prefix of dd, dw, dt.
	if _, status := r.Lookup("d"); status != Unterminated {
		t.Errorf("Lookup(%q) status = %v, want Unterminated", "d", status)
	}
	// "y" is a strict prefix of yy, yw.
	if _, status := r.Lookup("y"); status != Unterminated {
		t.Errorf("Lookup(%q) status = %v, want Unterminated", "y", status)
	}
}

func TestLookupUnknown(t *testing.T) {
	r := New(DefaultTable)
	if _, status := r.Lookup("Z"); status != Unknown {
		t.Errorf("Lookup(%q) status = %v, want Unknown", "Z", status)
	}
	// Once a prefix is extended past every alias it stops matching.
	if _, status := r.Lookup("ddx"); status != Unknown {
		t.Errorf("Lookup(%q) status = %v, want Unknown", "ddx", status)
	}
}

func TestLookupTotality(t *testing.T) {
	// Every single ASCII printable byte should resolve to exactly one of
	// the three statuses without panicking — the resolver must be total.
	r := New(DefaultTable)
	for c := byte(0x20); c < 0x7f; c++ {
		_, status := r.Lookup(string(c))
		if status != Resolved && status != Unterminated && status != Unknown {
			t.Errorf("Lookup(%q) returned invalid status %v", c, status)
		}
	}
}

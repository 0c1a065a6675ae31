package identity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"simple name", "David Lindley", "David Lindley", true},
		{"all caps", "DAVID LINDLEY", "David Lindley", true},
		{"last comma first", "LINDLEY, DAVID", "David Lindley", true},
		{"last comma first with spaces", "Lindley , David", "David Lindley", true},
		{"extra whitespace", "  David   Lindley  ", "David Lindley", true},
		{"punctuation stripped", "David (Lindley)!", "David Lindley", true},
		{"hyphen kept", "mary-jane watson", "Mary-jane Watson", true},
		{"middle initial with period", "david e. worth", "David E. Worth", true},
		{"too short", "J", "", false},
		{"two chars", "Jo", "", false},
		{"contains digit", "John123", "", false},
		{"digit in second word", "John Doe2", "", false},
		{"placeholder unknown", "unknown", "", false},
		{"placeholder mixed case", "UNKNOWN", "", false},
		{"placeholder private", "Private", "", false},
		{"placeholder restricted", "restricted", "", false},
		{"placeholder page chrome", "Search", "", false},
		{"placeholder view profile token", "profile", "", false},
		{"empty", "", "", false},
		{"only punctuation", "!!!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Reordering "Last, First" and title-casing must converge on the same
// cleaned string regardless of input formatting.
func TestNormalizeIdempotent(t *testing.T) {
	variants := []string{"LINDLEY, DAVID", "David Lindley", "david lindley", "Lindley,David"}
	for _, v := range variants {
		got, ok := Normalize(v)
		if !ok {
			t.Fatalf("Normalize(%q) rejected", v)
		}
		if got != "David Lindley" {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, "David Lindley")
		}
	}

	// Normalizing an already-normalized name is a no-op.
	once, _ := Normalize("LINDLEY, DAVID")
	twice, ok := Normalize(once)
	if !ok || twice != once {
		t.Errorf("Normalize(Normalize(x)) = %q, want %q", twice, once)
	}
}

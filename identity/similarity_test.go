package identity

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantMin float64
		wantMax float64
	}{
		{"identical", "David Lindley", "David Lindley", 1.0, 1.0},
		{"case and punctuation folded", "David Lindley", "david lindley!", 1.0, 1.0},
		{"minor variant", "David Lindley", "Dave Lindley", 0.7, 1.0},
		{"middle initial", "David E Worth", "David Worth", 0.8, 1.0},
		{"unrelated names", "David Lindley", "Maria Santos", 0.0, 0.5},
		{"both empty", "", "", 1.0, 1.0},
		{"one empty", "", "David", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"David Lindley", "Lindley David"},
		{"David Lindley", "Maria Santos"},
		{"Jon Smith", "John Smyth"},
		{"a b c", "c b a"},
		{"", "x"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but Similarity(%q, %q) = %v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestSimilarityReflexive(t *testing.T) {
	for _, s := range []string{"David", "David Lindley", "O'Brien", "x"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"David Lindley", "Maria Santos"},
		{"a", "completely different string"},
		{"same", "same"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want within [0, 1]", p[0], p[1], got)
		}
	}
}

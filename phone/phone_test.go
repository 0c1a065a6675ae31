package phone

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		region  string
		want    Number
		wantErr bool
	}{
		{
			name:   "e164 passthrough",
			raw:    "+14155552671",
			region: "US",
			want:   Number{E164: "+14155552671", National: "4155552671", Region: "US", Valid: true},
		},
		{
			name:   "national with punctuation",
			raw:    "(415) 555-2671",
			region: "US",
			want:   Number{E164: "+14155552671", National: "4155552671", Region: "US", Valid: true},
		},
		{
			name:   "dotted",
			raw:    "415.555.2671",
			region: "US",
			want:   Number{E164: "+14155552671", National: "4155552671", Region: "US", Valid: true},
		},
		{
			name:    "garbage",
			raw:     "not a number",
			region:  "US",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw, tt.region)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDashed(t *testing.T) {
	n := Number{National: "4155552671"}
	if got := n.Dashed(); got != "415-555-2671" {
		t.Errorf("Dashed() = %q, want %q", got, "415-555-2671")
	}

	// Non-ten-digit numbers pass through undashed.
	intl := Number{National: "442071838750"}
	if got := intl.Dashed(); got != "442071838750" {
		t.Errorf("Dashed() = %q, want %q", got, "442071838750")
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"+1 (415) 555-2671", "14155552671"},
		{"415.555.2671", "4155552671"},
		{"no digits", ""},
	}
	for _, tt := range tests {
		if got := Digits(tt.raw); got != tt.want {
			t.Errorf("Digits(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

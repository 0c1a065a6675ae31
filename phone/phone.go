// Package phone normalizes phone numbers into the formats the hunting
// sources expect.
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Number is a parsed, validated phone number.
type Number struct {
	// E164 is the canonical +15551234567 form used by API sources.
	E164 string
	// National is the significant national number, digits only.
	National string
	// Region is the ISO 3166-1 region code, e.g. "US".
	Region string
	// Valid reports whether the number is possible and valid for its
	// region.
	Valid bool
}

// Parse parses a raw phone number. defaultRegion is used when the
// number lacks a country prefix; pass "US" for bare ten-digit input.
func Parse(raw, defaultRegion string) (Number, error) {
	parsed, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return Number{}, fmt.Errorf("parse phone %q: %w", raw, err)
	}

	return Number{
		E164:     phonenumbers.Format(parsed, phonenumbers.E164),
		National: phonenumbers.GetNationalSignificantNumber(parsed),
		Region:   phonenumbers.GetRegionCodeForNumber(parsed),
		Valid:    phonenumbers.IsValidNumber(parsed),
	}, nil
}

// Dashed returns the 555-123-4567 form the people-search sites use in
// their URL paths. Falls back to the raw national digits when the
// number is not ten digits.
func (n Number) Dashed() string {
	d := n.National
	if len(d) != 10 {
		return d
	}
	return d[:3] + "-" + d[3:6] + "-" + d[6:]
}

// Digits strips everything but digits from raw. Used by sources that
// accept loosely formatted input.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

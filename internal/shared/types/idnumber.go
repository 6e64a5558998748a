package types

import (
	"fmt"
	"regexp"
	"time"
)

// IDNumber represents a South African identity number (13 digits)
// Format: YYMMDDSSSSCAZ where:
// - YYMMDD: date of birth
// - SSSS: sequence number (5000+ male, below 5000 female)
// - C: citizenship (0 citizen, 1 permanent resident)
// - A: usually 8
// - Z: Luhn check digit
type IDNumber string

var idNumberRegex = regexp.MustCompile(`^\d{13}$`)

// ParseIDNumber validates and parses an identity number string
func ParseIDNumber(s string) (IDNumber, error) {
	if !idNumberRegex.MatchString(s) {
		return "", fmt.Errorf("identity number must be exactly 13 digits")
	}

	n := IDNumber(s)
	if !n.IsValid() {
		return "", fmt.Errorf("invalid identity number check digit")
	}

	return n, nil
}

// String returns the string representation
func (n IDNumber) String() string {
	return string(n)
}

// Masked returns a masked version for display (birth date visible)
func (n IDNumber) Masked() string {
	if len(n) < 13 {
		return "*************"
	}
	return string(n)[:6] + "*******"
}

// IsValid validates the Luhn check digit over all 13 digits
func (n IDNumber) IsValid() bool {
	if !idNumberRegex.MatchString(string(n)) {
		return false
	}

	sum := 0
	double := false
	for i := 12; i >= 0; i-- {
		d := int(n[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// BirthDate extracts the date of birth encoded in the first six digits.
// Two-digit years at or below the current year map to 2000s, otherwise 1900s.
func (n IDNumber) BirthDate() (time.Time, error) {
	if !idNumberRegex.MatchString(string(n)) {
		return time.Time{}, fmt.Errorf("identity number must be exactly 13 digits")
	}

	t, err := time.Parse("060102", string(n)[:6])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date in identity number: %w", err)
	}

	if t.Year() > time.Now().Year() {
		t = t.AddDate(-100, 0, 0)
	}
	return t, nil
}

// IsZero checks if the identity number is empty
func (n IDNumber) IsZero() bool {
	return n == ""
}

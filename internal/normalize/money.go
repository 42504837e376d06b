package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxAmountWholeDigits bounds the integer part of an amount so it fits the
// numeric(12,2) patient_responsibility column.
const MaxAmountWholeDigits = 10

const maxAmountCents = 99_999_999_999_99

// ParseAmountCents converts an X12 decimal amount ("25", "25.5", ".75") to
// integer cents, rounding half-up on the third decimal place. The text is
// read digit by digit, so no precision is lost. Signs other than a leading
// "+", exponents, and values above 9999999999.99 are rejected.
func ParseAmountCents(v string) (int64, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount %q is negative", s)
	}
	s = strings.TrimPrefix(s, "+")

	whole, frac, _ := strings.Cut(s, ".")
	if (whole == "" && frac == "") || !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf("malformed amount %q", v)
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > MaxAmountWholeDigits {
		return 0, fmt.Errorf("amount %q exceeds %d whole digits", s, MaxAmountWholeDigits)
	}

	var cents int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", s, err)
		}
		cents = n * 100
	}
	frac += "000"
	cents += int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}
	if cents > maxAmountCents {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return cents, nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatCents renders non-negative integer cents as a decimal with two
// places.
func FormatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// NormalizeAmount parses and re-renders an amount with two decimal places.
func NormalizeAmount(v string) (string, error) {
	c, err := ParseAmountCents(v)
	if err != nil {
		return "", err
	}
	return FormatCents(c), nil
}

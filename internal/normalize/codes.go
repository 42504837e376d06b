package normalize

import "strings"

// NormalizeCode trims surrounding whitespace from an X12 code value.
// Codes are never case-folded or numerically coerced: "01" and "1" are
// distinct codes.
func NormalizeCode(v string) string {
	return strings.TrimSpace(v)
}

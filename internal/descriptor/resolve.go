package descriptor

import (
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/normalize"
)

// UnmappedPrefix prefixes the fallback description of a code missing from
// its mapping.
const UnmappedPrefix = "Unmapped Code: "

// Lookup returns the description for code and whether it was found. The
// code is trimmed before lookup and never coerced to a number.
func Lookup(m Mapping, code string) (string, bool) {
	desc, ok := m[normalize.NormalizeCode(code)]
	return desc, ok
}

// Resolve returns the description for code, or "Unmapped Code: <code>"
// with the raw code embedded verbatim when the mapping has no entry.
func Resolve(m Mapping, code string) string {
	if desc, ok := Lookup(m, code); ok {
		return desc
	}
	return UnmappedPrefix + code
}

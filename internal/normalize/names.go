package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// x12Reserved are characters commonly used as X12 delimiters. They can never
// appear inside an element value.
var x12Reserved = strings.NewReplacer("*", "", "~", "", "^", "", ":", "", "|", "")

// NormalizeName uppercases, collapses whitespace, trims, and drops X12
// delimiter characters from a person name.
func NormalizeName(v string) string {
	s := x12Reserved.Replace(v)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	return multiSpace.ReplaceAllString(s, " ")
}

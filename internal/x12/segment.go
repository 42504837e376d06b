// Package x12 tokenizes, decodes and generates ANSI X12 270/271 eligibility
// transactions.
package x12

import (
	"fmt"
	"strings"
)

// Segment is one tag-prefixed segment. Element 0 is the tag; element i is
// the i-th data element (NM103 is Element(3)).
type Segment []string

// Tag returns the segment identifier.
func (s Segment) Tag() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Element returns the element at index i, or "" when the segment carries
// fewer elements. Partners routinely omit trailing optional elements, so a
// short segment is never an error.
func (s Segment) Element(i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// Format joins the segment's elements with the given element separator.
func (s Segment) Format(elementSeparator string) string {
	return strings.Join(s, elementSeparator)
}

// Delimiters are the separator characters of an interchange.
type Delimiters struct {
	Segment    string
	Element    string
	Repetition string
	Component  string
}

// DefaultDelimiters are the delimiters used when none are configured.
var DefaultDelimiters = Delimiters{
	Segment:    "~",
	Element:    "*",
	Repetition: "^",
	Component:  ":",
}

// withDefaults fills empty fields from DefaultDelimiters.
func (d Delimiters) withDefaults() Delimiters {
	if d.Segment == "" {
		d.Segment = DefaultDelimiters.Segment
	}
	if d.Element == "" {
		d.Element = DefaultDelimiters.Element
	}
	if d.Repetition == "" {
		d.Repetition = DefaultDelimiters.Repetition
	}
	if d.Component == "" {
		d.Component = DefaultDelimiters.Component
	}
	return d
}

// Validate checks that the delimiters are single characters and unique.
func (d Delimiters) Validate() error {
	d = d.withDefaults()
	seen := map[string]bool{}
	for _, v := range []string{d.Segment, d.Element, d.Repetition, d.Component} {
		if len([]rune(v)) != 1 {
			return fmt.Errorf("delimiter %q must be a single character", v)
		}
		if seen[v] {
			return fmt.Errorf("delimiters must be unique (got %q twice)", v)
		}
		seen[v] = true
	}
	return nil
}

// Format renders segments as interchange text, terminating every segment.
func Format(segments []Segment, d Delimiters) string {
	d = d.withDefaults()
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Format(d.Element))
		b.WriteString(d.Segment)
	}
	return b.String()
}

// MalformedSegmentError reports a non-empty segment without a tag.
type MalformedSegmentError struct {
	// Position is the one-based ordinal of the segment in the input.
	Position int
	Text     string
}

func (e *MalformedSegmentError) Error() string {
	return fmt.Sprintf("malformed segment at position %d: empty tag in %q", e.Position, e.Text)
}

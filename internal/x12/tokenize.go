package x12

import (
	"errors"
	"strings"
)

// TokenizeOption configures Tokenize.
type TokenizeOption func(*Delimiters)

// WithDelimiters replaces all delimiters. Empty fields keep their defaults.
func WithDelimiters(d Delimiters) TokenizeOption {
	return func(dst *Delimiters) {
		*dst = d.withDefaults()
	}
}

// WithSegmentTerminator sets the segment terminator.
func WithSegmentTerminator(s string) TokenizeOption {
	return func(d *Delimiters) {
		if s != "" {
			d.Segment = s
		}
	}
}

// WithElementSeparator sets the element separator.
func WithElementSeparator(s string) TokenizeOption {
	return func(d *Delimiters) {
		if s != "" {
			d.Element = s
		}
	}
}

// Tokenize splits raw interchange text into segments, using "~" and "*"
// unless options say otherwise.
//
// Trailing terminators, line breaks between segments and blank segments
// are dropped silently. A non-empty segment with an empty tag is reported
// as a *MalformedSegmentError; all such errors are joined into the returned
// error while every well-formed segment is still returned, in order, so a
// caller can keep decoding the rest of the stream.
func Tokenize(raw string, opts ...TokenizeOption) ([]Segment, error) {
	d := DefaultDelimiters
	for _, opt := range opts {
		opt(&d)
	}
	pieces := strings.Split(raw, d.Segment)
	segments := make([]Segment, 0, len(pieces))
	var errs []error
	position := 0

	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		position++
		elements := strings.Split(piece, d.Element)
		if strings.TrimSpace(elements[0]) == "" {
			errs = append(errs, &MalformedSegmentError{Position: position, Text: piece})
			continue
		}
		elements[0] = strings.TrimSpace(elements[0])
		segments = append(segments, Segment(elements))
	}
	return segments, errors.Join(errs...)
}

// DetectDelimiters reads the delimiters from a fixed-width ISA header. The
// element separator is the fourth byte, the component separator ISA16, and
// the segment terminator the byte following ISA16. ok is false when raw
// does not start with a complete ISA segment.
func DetectDelimiters(raw string) (d Delimiters, ok bool) {
	text := strings.TrimLeft(raw, " \t\r\n")
	if len(text) < isaByteCount || !strings.HasPrefix(text, isaSegmentId) {
		return DefaultDelimiters, false
	}
	d.Element = text[isaElementSeparatorIndex : isaElementSeparatorIndex+1]
	d.Component = text[isaComponentIndex : isaComponentIndex+1]
	d.Segment = text[isaTerminatorIndex : isaTerminatorIndex+1]

	header := strings.Split(text[:isaComponentIndex], d.Element)
	if len(header) > isaIndexRepetitionSeparator && len(header[isaIndexRepetitionSeparator]) == 1 {
		d.Repetition = header[isaIndexRepetitionSeparator]
	}
	d = d.withDefaults()
	if d.Validate() != nil {
		return DefaultDelimiters, false
	}
	return d, true
}

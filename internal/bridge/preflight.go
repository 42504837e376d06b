package bridge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/config"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/normalize"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

// PreflightResult holds everything learned about an input file before
// decoding.
type PreflightResult struct {
	FilePath   string
	FileSHA256 string
	FileSize   int64

	// Delimiters used to tokenize; Detected is true when they came from
	// the file's ISA header rather than config or defaults.
	Delimiters x12.Delimiters
	Detected   bool

	Segments  []x12.Segment
	Malformed []*x12.MalformedSegmentError

	// Transactions counts ST segments, Terminated counts SE segments.
	Transactions int
	Terminated   int
}

// Preflight hashes and tokenizes the file. Malformed segments are
// collected, not fatal; an unreadable file or a file without a single
// segment is.
func Preflight(log zerolog.Logger, filePath string, configured *x12.Delimiters) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: fmt.Errorf("preflight hash: %w", err)}
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: fmt.Errorf("preflight read: %w", err)}
	}
	raw := string(data)

	pf := &PreflightResult{
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   int64(len(data)),
	}
	if configured != nil {
		pf.Delimiters = *configured
	} else {
		pf.Delimiters, pf.Detected = x12.DetectDelimiters(raw)
	}

	segments, tokErr := x12.Tokenize(raw, x12.WithDelimiters(pf.Delimiters))
	pf.Segments = segments
	pf.Malformed = malformedSegments(tokErr)
	if len(segments) == 0 {
		err := errors.New("no segments found")
		if tokErr != nil {
			err = fmt.Errorf("no well-formed segments: %w", tokErr)
		}
		return nil, &PipelineError{Phase: PhaseTokenize, Err: err}
	}

	for _, seg := range segments {
		switch seg.Tag() {
		case "ST":
			pf.Transactions++
		case "SE":
			pf.Terminated++
		}
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int("segments", len(segments)).
		Int("malformed", len(pf.Malformed)).
		Int("transactions", pf.Transactions).
		Bool("delimiters_detected", pf.Detected).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return pf, nil
}

func malformedSegments(err error) []*x12.MalformedSegmentError {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	var out []*x12.MalformedSegmentError
	for _, e := range errs {
		var m *x12.MalformedSegmentError
		if errors.As(e, &m) {
			out = append(out, m)
		}
	}
	return out
}

// ConfiguredDelimiters returns the delimiters set in cfg, or nil when none
// were configured and the ISA header should be consulted.
func ConfiguredDelimiters(cfg *config.Config) *x12.Delimiters {
	d := x12.Delimiters{
		Segment:    cfg.SegmentTerminator,
		Element:    cfg.ElementSeparator,
		Repetition: cfg.RepetitionSeparator,
		Component:  cfg.ComponentSeparator,
	}
	if d == (x12.Delimiters{}) {
		return nil
	}
	return &d
}

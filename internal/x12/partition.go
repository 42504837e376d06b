package x12

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/batch"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/descriptor"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

// Partition splits a segment stream after every SE. Segments following
// the last SE (GE, IEA or a truncated transaction) form a final partition.
// Each partition decodes independently of the others.
func Partition(segments []Segment) [][]Segment {
	var parts [][]Segment
	start := 0
	for i, seg := range segments {
		if seg.Tag() == seSegmentId {
			parts = append(parts, segments[start:i+1])
			start = i + 1
		}
	}
	if start < len(segments) {
		parts = append(parts, segments[start:])
	}
	return parts
}

// DecodeParallel decodes the partitions of segments on up to workers
// goroutines and returns one batch whose records are in source order. The
// result equals a sequential Decode followed by Flush.
func DecodeParallel(
	ctx context.Context,
	table *descriptor.Table,
	segments []Segment,
	workers int,
	opts ...DecoderOption,
) (*batch.Aggregator, Stats, error) {
	if workers < 1 {
		return nil, Stats{}, fmt.Errorf("workers must be >= 1, got %d", workers)
	}
	if table == nil {
		table = descriptor.Defaults()
	}

	parts := Partition(segments)
	results := make([][]model.EligibilityRecord, len(parts))
	stats := make([]Stats, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, part := range parts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dec := NewDecoder(table, opts...)
			dec.Decode(part)
			dec.Flush()
			results[i] = dec.Batch().Records()
			stats[i] = dec.Stats()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("parallel decode: %w", err)
	}

	out := batch.New()
	var total Stats
	for i := range parts {
		for _, rec := range results[i] {
			out.Append(rec)
		}
		total.add(stats[i])
	}
	return out, total, nil
}

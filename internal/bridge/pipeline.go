package bridge

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/batch"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/config"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/db"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/descriptor"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/export"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

// Run executes the decode pipeline: preflight → decode → export → store.
// pool may be nil when cfg.Store is off.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.DecodeSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(log, cfg.FilePath, ConfiguredDelimiters(cfg))
	if err != nil {
		return nil, err
	}
	for _, m := range pf.Malformed {
		log.Warn().Int("position", m.Position).Str("text", m.Text).Msg("skipping malformed segment")
	}

	table, err := LoadTable(cfg)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: err}
	}

	// Phase 2: Decode
	decodeStart := time.Now()
	agg, stats, err := decode(ctx, log, table, pf.Segments, cfg.Workers)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseDecode, Err: err}
	}
	durDecode := time.Since(decodeStart)
	log.Info().
		Int("records", agg.Len()).
		Int("not_verified", agg.NotVerified()).
		Int("discarded", stats.Discarded).
		Int("unmapped", stats.Unmapped).
		Str("batch_id", agg.ID().String()).
		Str("duration", durDecode.String()).
		Msg("decode complete")

	summary := &model.DecodeSummary{
		FilePath:          pf.FilePath,
		FileSHA256:        pf.FileSHA256,
		BatchID:           agg.ID().String(),
		Segments:          len(pf.Segments),
		MalformedSegments: len(pf.Malformed),
		Transactions:      stats.Transactions,
		Records:           agg.Len(),
		NotVerified:       agg.NotVerified(),
		UnmappedCodes:     stats.Unmapped,
		DurationDecode:    durDecode,
	}

	// Phase 3: Export
	if cfg.OutPath != "" {
		exportStart := time.Now()
		n, err := WriteReport(cfg.OutPath, cfg.ExportFormat, agg)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseExport, Err: err}
		}
		summary.RowsExported = n
		summary.DurationExport = time.Since(exportStart)
		log.Info().Str("out", cfg.OutPath).Str("format", cfg.ExportFormat).Int("rows", n).Msg("report written")
	}

	// Phase 4: Store
	if cfg.Store {
		if pool == nil {
			return nil, &PipelineError{Phase: PhaseStore, Err: fmt.Errorf("store requested without a database")}
		}
		storeStart := time.Now()
		n, err := store(ctx, pool, log, pf, agg, cfg.Force)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseStore, Err: err}
		}
		summary.RowsStored = n
		summary.DurationStore = time.Since(storeStart)
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int("records", summary.Records).
		Int("rows_exported", summary.RowsExported).
		Int64("rows_stored", summary.RowsStored).
		Int("malformed", summary.MalformedSegments).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("decode pipeline complete")

	return summary, nil
}

func decode(ctx context.Context, log zerolog.Logger, table *descriptor.Table, segments []x12.Segment, workers int) (*batch.Aggregator, x12.Stats, error) {
	opts := []x12.DecoderOption{
		x12.WithLogger(log),
		x12.WithUnmappedHook(func(kind model.DescriptorKind, code string) {
			log.Warn().Str("code_set", kind.String()).Str("code", code).Msg("unmapped code")
		}),
	}
	if workers > 1 {
		return x12.DecodeParallel(ctx, table, segments, workers, opts...)
	}

	dec := x12.NewDecoder(table, opts...)
	dec.Decode(segments)
	dec.Flush()
	return dec.Batch(), dec.Stats(), nil
}

// WriteReport writes the batch report to path as "csv" or "parquet" and
// returns the number of rows written.
func WriteReport(path, format string, agg *batch.Aggregator) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}

	var n int
	switch format {
	case "parquet":
		n, err = export.WriteParquet(f, agg.Records())
	case "csv":
		n = agg.Len()
		err = export.WriteCSV(f, agg.Columns(), agg.Rows())
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close report: %w", err)
	}
	return n, nil
}

func store(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, agg *batch.Aggregator, force bool) (int64, error) {
	batchID, alreadyLoaded, err := db.RegisterBatch(ctx, pool, agg.ID(), pf.FilePath, pf.FileSHA256, force)
	if err != nil {
		return 0, err
	}
	if alreadyLoaded {
		log.Info().
			Str("batch_id", batchID.String()).
			Str("sha256", pf.FileSHA256).
			Msg("file already stored, skipping (use --force to re-store)")
		return 0, nil
	}

	n, err := db.StoreRecords(ctx, pool, batchID, agg.Records())
	if err != nil {
		_ = db.UpdateBatchStatus(ctx, pool, batchID, db.StatusFailed, 0)
		return 0, err
	}
	log.Info().Str("batch_id", batchID.String()).Int64("rows", n).Msg("records stored")
	return n, nil
}

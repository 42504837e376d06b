package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/bridge"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/db"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/exitcode"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/logging"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a 271 response file into an eligibility report",
	RunE:  runDecode,
}

func init() {
	f := decodeCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to 271 file (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Report output path")
	f.StringVar(&cfg.ExportFormat, "format", "", "Report format: csv or parquet (default from --out extension)")
	f.IntVar(&cfg.Workers, "workers", 0, "Decode transactions on this many goroutines (default 1)")
	f.BoolVar(&cfg.Store, "store", false, "Store decoded records in Postgres")
	f.BoolVar(&cfg.Force, "force", false, "Re-store even if the file SHA was stored before")
	_ = decodeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateDecode(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitcode.New(exitcode.UsageError)
	}

	var pool *pgxpool.Pool
	if cfg.Store {
		var err error
		pool, err = db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			return exitcode.New(exitcode.DBConnError)
		}
		defer pool.Close()
	}

	summary, err := bridge.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *bridge.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("decode failed")
		} else {
			log.Error().Err(err).Msg("decode failed")
		}
		return exitcode.New(decodeExitCode(err))
	}

	fmt.Printf("Decode complete: %d records (%d not verified), %d exported, %d stored (%.1fs)\n",
		summary.Records, summary.NotVerified, summary.RowsExported, summary.RowsStored, summary.DurationTotal.Seconds())
	if summary.MalformedSegments > 0 {
		fmt.Printf("Skipped %d malformed segments\n", summary.MalformedSegments)
		return exitcode.New(exitcode.PartialSuccess)
	}
	return nil
}

// decodeExitCode maps a pipeline failure to the process exit code.
func decodeExitCode(err error) int {
	var pe *bridge.PipelineError
	if !errors.As(err, &pe) {
		return exitcode.DecodeError
	}
	switch pe.Phase {
	case bridge.PhaseRead, bridge.PhaseTokenize:
		return exitcode.ValidationError
	case bridge.PhaseExport:
		return exitcode.ExportError
	case bridge.PhaseStore:
		return exitcode.StoreError
	default:
		return exitcode.DecodeError
	}
}

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/bridge"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/exitcode"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/logging"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a Parquet eligibility report as CSV",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet report (required)")
	f.StringVar(&cfg.OutPath, "out", "", "CSV output path (default stdout)")
	_ = reportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitcode.New(exitcode.UsageError)
	}

	var w io.Writer = os.Stdout
	if cfg.OutPath != "" {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to create output")
			return exitcode.New(exitcode.ExportError)
		}
		defer f.Close()
		w = f
	}

	n, err := bridge.ParquetToCSV(cfg.FilePath, w)
	if err != nil {
		log.Error().Err(err).Msg("report failed")
		return exitcode.New(exitcode.ExportError)
	}
	log.Info().Int("rows", n).Msg("report written")
	return nil
}

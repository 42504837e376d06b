package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/bridge"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/exitcode"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/logging"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

const maxListedMalformed = 10

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats for a 271 file (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to 271 file (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitcode.New(exitcode.UsageError)
	}

	pf, err := bridge.Preflight(log, cfg.FilePath, bridge.ConfiguredDelimiters(&cfg))
	if err != nil {
		log.Error().Err(err).Msg("preflight failed")
		return exitcode.New(exitcode.ValidationError)
	}

	table, err := bridge.LoadTable(&cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to load descriptor table")
		return exitcode.New(exitcode.ValidationError)
	}

	unmapped := make(map[string]int)
	dec := x12.NewDecoder(table, x12.WithLogger(log), x12.WithUnmappedHook(func(kind model.DescriptorKind, code string) {
		unmapped[kind.String()+" "+code]++
	}))
	dec.Decode(pf.Segments)
	dec.Flush()
	stats := dec.Stats()
	agg := dec.Batch()

	source := "configured"
	switch {
	case pf.Detected:
		source = "ISA header"
	case bridge.ConfiguredDelimiters(&cfg) == nil:
		source = "defaults"
	}

	fmt.Println("=== eligbridge plan ===")
	fmt.Printf("File:         %s\n", pf.FilePath)
	fmt.Printf("SHA-256:      %s\n", pf.FileSHA256)
	fmt.Printf("Size:         %d bytes\n", pf.FileSize)
	fmt.Printf("Delimiters:   segment %q element %q (%s)\n", pf.Delimiters.Segment, pf.Delimiters.Element, source)
	fmt.Printf("Segments:     %d\n", len(pf.Segments))
	fmt.Printf("Transactions: %d started, %d terminated\n", pf.Transactions, pf.Terminated)
	fmt.Printf("Records:      %d (%d not verified)\n", agg.Len(), agg.NotVerified())
	fmt.Printf("Discarded:    %d incomplete transactions\n", stats.Discarded)
	fmt.Printf("Bad amounts:  %d\n", stats.InvalidAmounts)

	if len(pf.Malformed) > 0 {
		fmt.Printf("\nMalformed segments: %d\n", len(pf.Malformed))
		for i, m := range pf.Malformed {
			if i == maxListedMalformed {
				fmt.Printf("  ... %d more\n", len(pf.Malformed)-maxListedMalformed)
				break
			}
			fmt.Printf("  #%-6d %q\n", m.Position, m.Text)
		}
	}

	if len(unmapped) > 0 {
		keys := make([]string, 0, len(unmapped))
		for k := range unmapped {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("\nUnmapped codes:")
		for _, k := range keys {
			fmt.Printf("  %-30s %d\n", k, unmapped[k])
		}
	}

	if len(pf.Malformed) > 0 || stats.Discarded > 0 {
		fmt.Println("\nValidation: WARNINGS")
		return nil
	}
	fmt.Println("\nValidation: OK")
	return nil
}

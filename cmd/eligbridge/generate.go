package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/bridge"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/ctrlstate"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/db"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/exitcode"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/logging"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

var (
	inquiry            model.InquiryRequest
	firstControlNumber uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate 270 eligibility inquiries",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&cfg.InquiryFile, "inquiries", "", "YAML inquiry list (instead of the single-inquiry flags)")
	f.StringVar(&inquiry.LastName, "last-name", "", "Subscriber last name")
	f.StringVar(&inquiry.FirstName, "first-name", "", "Subscriber first name")
	f.StringVar(&inquiry.MemberID, "member-id", "", "Subscriber member id")
	f.StringVar(&inquiry.DateOfBirth, "dob", "", "Subscriber date of birth")
	f.StringVar(&inquiry.ServiceTypeCode, "service-type", "30", "Service type code")
	f.StringVar(&cfg.OutPath, "out", "", "Output path (default stdout)")
	f.StringVar(&cfg.SenderID, "sender-id", "", "Interchange sender id")
	f.StringVar(&cfg.ReceiverID, "receiver-id", "", "Interchange receiver id")
	f.StringVar(&cfg.UsageIndicator, "usage", "", "Usage indicator: P or T (default P)")
	f.Uint64Var(&firstControlNumber, "first-control-number", 1, "Lowest control number to issue")
	f.StringVar(&cfg.ControlNumberFile, "control-number-file", "", "File tracking the last issued control number")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitcode.New(exitcode.UsageError)
	}

	reqs := []model.InquiryRequest{inquiry}
	if cfg.InquiryFile != "" {
		var err error
		if reqs, err = bridge.LoadInquiries(cfg.InquiryFile); err != nil {
			log.Error().Err(err).Msg("failed to load inquiries")
			return exitcode.New(exitcode.ValidationError)
		}
	}

	var (
		res    *bridge.GenerateResult
		genErr error
	)
	switch {
	case cfg.DSN != "":
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			return exitcode.New(exitcode.DBConnError)
		}
		defer pool.Close()

		last, err := db.LastControlNumber(ctx, pool)
		if err != nil {
			log.Error().Err(err).Msg("failed to read last control number")
			return exitcode.New(exitcode.StoreError)
		}
		b, err := bridge.NewBuilder(&cfg, max(last+1, firstControlNumber))
		if err != nil {
			log.Error().Err(err).Msg("invalid envelope settings")
			return exitcode.New(exitcode.UsageError)
		}
		res, genErr = bridge.Generate(ctx, log, b, reqs, func(ctx context.Context, inq *x12.Inquiry, req model.InquiryRequest) error {
			return db.RecordInquiry(ctx, pool, inq.ControlNumber, req, inq.CreatedAt)
		})

	case cfg.ControlNumberFile != "":
		state := ctrlstate.Open(cfg.ControlNumberFile)
		var builderErr error
		err := state.Update(ctx, func(last uint64) (uint64, error) {
			b, err := bridge.NewBuilder(&cfg, max(last+1, firstControlNumber))
			if err != nil {
				builderErr = err
				return 0, err
			}
			res, genErr = bridge.Generate(ctx, log, b, reqs, nil)
			return b.NextControlNumber() - 1, nil
		})
		if builderErr != nil {
			log.Error().Err(builderErr).Msg("invalid envelope settings")
			return exitcode.New(exitcode.UsageError)
		}
		if err != nil {
			log.Error().Err(err).Str("path", state.Path()).Msg("control number state update failed")
			return exitcode.New(exitcode.StoreError)
		}

	default:
		b, err := bridge.NewBuilder(&cfg, firstControlNumber)
		if err != nil {
			log.Error().Err(err).Msg("invalid envelope settings")
			return exitcode.New(exitcode.UsageError)
		}
		res, genErr = bridge.Generate(ctx, log, b, reqs, nil)
	}

	// Inquiries issued before a failure are still written.
	if res != nil && len(res.Inquiries) > 0 {
		if err := writeInquiries(res.Inquiries); err != nil {
			log.Error().Err(err).Msg("failed to write inquiries")
			return exitcode.New(exitcode.ExportError)
		}
	}

	if genErr != nil {
		var pe *bridge.PipelineError
		if errors.As(genErr, &pe) && pe.Phase == bridge.PhaseStore {
			log.Error().Err(pe.Err).Msg("failed to record inquiry")
			return exitcode.New(exitcode.StoreError)
		}
		log.Error().Err(genErr).Msg("generate failed")
		return exitcode.New(exitcode.GenerateError)
	}

	log.Info().Int("generated", len(res.Inquiries)).Int("rejected", res.Rejected).Msg("generate complete")
	if res.Rejected > 0 {
		return exitcode.New(exitcode.PartialSuccess)
	}
	return nil
}

func writeInquiries(inquiries []*x12.Inquiry) error {
	if cfg.OutPath == "" {
		return bridge.WriteInquiries(os.Stdout, inquiries)
	}
	f, err := os.Create(cfg.OutPath)
	if err != nil {
		return err
	}
	if err := bridge.WriteInquiries(f, inquiries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

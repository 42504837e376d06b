package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/config"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/normalize"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

type inquiryFile struct {
	Inquiries []model.InquiryRequest `yaml:"inquiries"`
}

// LoadInquiries reads a YAML inquiry list.
func LoadInquiries(path string) ([]model.InquiryRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inquiry file: %w", err)
	}
	var f inquiryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse inquiry file: %w", err)
	}
	if len(f.Inquiries) == 0 {
		return nil, fmt.Errorf("inquiry file %s lists no inquiries", path)
	}
	return f.Inquiries, nil
}

// NewBuilder configures an envelope builder from cfg, issuing control
// numbers from first.
func NewBuilder(cfg *config.Config, first uint64) (*x12.Builder, error) {
	opts := []x12.BuilderOption{
		x12.WithSender(cfg.SenderQualifier, cfg.SenderID),
		x12.WithReceiver(cfg.ReceiverQualifier, cfg.ReceiverID),
		x12.WithUsageIndicator(cfg.UsageIndicator),
		x12.WithFirstControlNumber(first),
	}
	if d := ConfiguredDelimiters(cfg); d != nil {
		opts = append(opts, x12.WithBuilderDelimiters(*d))
	}
	return x12.NewBuilder(opts...)
}

// RecordFunc is called for every issued inquiry, in control-number order.
type RecordFunc func(ctx context.Context, inq *x12.Inquiry, req model.InquiryRequest) error

// GenerateResult summarizes a generation run.
type GenerateResult struct {
	Inquiries []*x12.Inquiry
	Rejected  int
}

// Generate normalizes and serializes every request. Requests that cannot
// be normalized or are incomplete are logged and skipped without consuming
// a control number. Exhausting the control numbers or a failing record
// callback stops the run.
func Generate(ctx context.Context, log zerolog.Logger, b *x12.Builder, reqs []model.InquiryRequest, record RecordFunc) (*GenerateResult, error) {
	res := &GenerateResult{}
	for i, raw := range reqs {
		if err := ctx.Err(); err != nil {
			return res, &PipelineError{Phase: PhaseGenerate, Err: err}
		}

		req, err := normalize.Inquiry(raw)
		if err != nil {
			res.Rejected++
			log.Warn().Err(err).Int("inquiry", i+1).Msg("inquiry rejected")
			continue
		}

		inq, err := b.Build(req)
		if errors.Is(err, x12.ErrControlNumberExhausted) {
			return res, &PipelineError{Phase: PhaseGenerate, Err: err}
		}
		if err != nil {
			res.Rejected++
			log.Warn().Err(err).Int("inquiry", i+1).Str("last_name", req.LastName).Msg("inquiry rejected")
			continue
		}

		if record != nil {
			if err := record(ctx, inq, req); err != nil {
				return res, &PipelineError{Phase: PhaseStore, Err: err}
			}
		}
		res.Inquiries = append(res.Inquiries, inq)
		log.Debug().
			Str("control_number", inq.PaddedControlNumber()).
			Str("last_name", req.LastName).
			Msg("inquiry generated")
	}
	return res, nil
}

// WriteInquiries writes each interchange on its own line.
func WriteInquiries(w io.Writer, inquiries []*x12.Inquiry) error {
	for _, inq := range inquiries {
		if _, err := io.WriteString(w, inq.Text+"\n"); err != nil {
			return fmt.Errorf("write inquiry %s: %w", inq.PaddedControlNumber(), err)
		}
	}
	return nil
}

package bridge

import (
	"io"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/export"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/parquetread"
)

// ParquetToCSV re-renders a Parquet report as CSV and returns the row
// count.
func ParquetToCSV(path string, w io.Writer) (int, error) {
	r, err := parquetread.Open(path)
	if err != nil {
		return 0, &PipelineError{Phase: PhaseRead, Err: err}
	}
	defer r.Close()

	values := make([][]string, 0, r.NumRows())
	err = r.Each(func(row model.ReportRow) error {
		values = append(values, row.Values())
		return nil
	})
	if err != nil {
		return 0, &PipelineError{Phase: PhaseRead, Err: err}
	}
	if err := export.WriteCSV(w, model.ReportColumns(), values); err != nil {
		return 0, &PipelineError{Phase: PhaseExport, Err: err}
	}
	return len(values), nil
}

// Package export writes the report projection of a decoded batch.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

// WriteCSV writes header and rows as CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("csv row %d has %d values, header has %d", i+1, len(row), len(header))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteParquet writes records as ReportRows, returning the row count.
func WriteParquet(w io.Writer, records []model.EligibilityRecord) (int, error) {
	rows := make([]model.ReportRow, len(records))
	for i := range records {
		rows[i] = model.NewReportRow(&records[i])
	}

	pw := parquet.NewGenericWriter[model.ReportRow](w)
	n, err := pw.Write(rows)
	if err != nil {
		pw.Close()
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return n, fmt.Errorf("close parquet writer: %w", err)
	}
	return n, nil
}

package parquetread

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

const readBatchSize = 256

// Reader streams the rows of an exported eligibility report.
type Reader struct {
	path   string
	file   *os.File
	rows   *parquet.GenericReader[model.ReportRow]
	offset int64
}

// Open opens a Parquet report written by export.WriteParquet. Files missing
// any of the eight report columns are rejected.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat report %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("report %s is not a parquet file: %w", path, err)
	}
	if err := ValidateSchema(pf.Schema()); err != nil {
		f.Close()
		return nil, fmt.Errorf("report %s: %w", path, err)
	}

	return &Reader{
		path: path,
		file: f,
		rows: parquet.NewGenericReader[model.ReportRow](pf),
	}, nil
}

// NumRows returns the number of report lines in the file.
func (r *Reader) NumRows() int64 {
	return r.rows.NumRows()
}

// Each calls fn for every remaining row in file order. It stops at the
// first error fn returns and passes that error through unwrapped.
func (r *Reader) Each(fn func(row model.ReportRow) error) error {
	buf := make([]model.ReportRow, readBatchSize)
	for {
		n, err := r.rows.Read(buf)
		for i := range n {
			if ferr := fn(buf[i]); ferr != nil {
				return ferr
			}
		}
		r.offset += int64(n)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("report %s: read near row %d: %w", r.path, r.offset, err)
		}
	}
}

// ReadAll returns every remaining row.
func (r *Reader) ReadAll() ([]model.ReportRow, error) {
	out := make([]model.ReportRow, 0, r.NumRows()-r.offset)
	err := r.Each(func(row model.ReportRow) error {
		out = append(out, row)
		return nil
	})
	return out, err
}

// Close releases the reader and the underlying file.
func (r *Reader) Close() error {
	rerr := r.rows.Close()
	ferr := r.file.Close()
	return errors.Join(rerr, ferr)
}

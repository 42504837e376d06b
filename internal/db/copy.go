package db

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

var responsibilityColumn = slices.Index(model.StoreColumns(), "patient_responsibility")

// RecordSource implements pgx.CopyFromSource over a batch of records,
// numbering rows from 1 in batch order.
type RecordSource struct {
	batchID uuid.UUID
	records []model.EligibilityRecord
	idx     int
	err     error
}

// NewRecordSource creates a CopyFromSource for records under batchID.
func NewRecordSource(batchID uuid.UUID, records []model.EligibilityRecord) *RecordSource {
	return &RecordSource{batchID: batchID, records: records, idx: -1}
}

// Next advances to the next record.
func (s *RecordSource) Next() bool {
	if s.err != nil || s.idx+1 >= len(s.records) {
		return false
	}
	s.idx++
	return true
}

// Values returns the current record's values in StoreColumns order.
func (s *RecordSource) Values() ([]any, error) {
	rec := &s.records[s.idx]
	vals := rec.CopyValues(s.batchID, int64(s.idx+1))

	var amount pgtype.Numeric
	if err := amount.Scan(rec.PatientResponsibility); err != nil {
		s.err = fmt.Errorf("record %d: patient responsibility %q: %w", s.idx+1, rec.PatientResponsibility, err)
		return nil, s.err
	}
	vals[responsibilityColumn] = amount
	return vals, nil
}

// Err returns any error encountered during iteration.
func (s *RecordSource) Err() error {
	return s.err
}

// Compile-time check that RecordSource satisfies the interface.
var _ pgx.CopyFromSource = (*RecordSource)(nil)

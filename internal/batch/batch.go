// Package batch collects decoded eligibility records in arrival order.
package batch

import (
	"github.com/google/uuid"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

// Aggregator is an append-only, ordered collection of records from one
// decode session. It is not safe for concurrent use.
type Aggregator struct {
	id      uuid.UUID
	records []model.EligibilityRecord
}

// New returns an empty Aggregator with a fresh batch identifier.
func New() *Aggregator {
	return &Aggregator{id: uuid.New()}
}

// ID identifies the batch in exports and storage.
func (a *Aggregator) ID() uuid.UUID {
	return a.id
}

// Append adds a finalized record to the end of the batch.
func (a *Aggregator) Append(r model.EligibilityRecord) {
	a.records = append(a.records, r)
}

// Len returns the number of records.
func (a *Aggregator) Len() int {
	return len(a.records)
}

// Records returns a copy of the records in arrival order.
func (a *Aggregator) Records() []model.EligibilityRecord {
	out := make([]model.EligibilityRecord, len(a.records))
	copy(out, a.records)
	return out
}

// NotVerified counts records whose outcome is NotVerified.
func (a *Aggregator) NotVerified() int {
	n := 0
	for i := range a.records {
		if a.records[i].Outcome == model.NotVerified {
			n++
		}
	}
	return n
}

// Columns returns the report header.
func (a *Aggregator) Columns() []string {
	return model.ReportColumns()
}

// Rows projects every record onto the report columns.
func (a *Aggregator) Rows() [][]string {
	rows := make([][]string, len(a.records))
	for i := range a.records {
		rows[i] = a.records[i].ReportValues()
	}
	return rows
}

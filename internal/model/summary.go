package model

import "time"

// DecodeSummary captures metrics from a single 271 decode run.
type DecodeSummary struct {
	FilePath          string
	FileSHA256        string
	BatchID           string
	Segments          int
	MalformedSegments int
	Transactions      int
	Records           int
	NotVerified       int
	UnmappedCodes     int
	RowsExported      int
	RowsStored        int64
	DurationDecode    time.Duration
	DurationExport    time.Duration
	DurationStore     time.Duration
	DurationTotal     time.Duration
}

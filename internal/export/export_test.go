package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

func TestWriteCSV(t *testing.T) {
	rec := model.EligibilityRecord{
		LastName:              "O'BRIEN, JR",
		FirstName:             "PAT",
		Outcome:               model.Verified,
		RejectDetail:          "Validated",
		EligibilityStatus:     "Active Coverage",
		PatientResponsibility: "25.00",
		ServiceType:           "Health Benefit Plan Coverage",
		InquiryTime:           time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, model.ReportColumns(), [][]string{rec.ReportValues()}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0][0] != "Patient Last Name" || got[0][7] != "Service Type" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][0] != "O'BRIEN, JR" || got[1][2] != "01/02/2024" || got[1][3] != "Verified" {
		t.Errorf("row = %v", got[1])
	}
}

func TestWriteCSV_RowWidthMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"a", "b"}, [][]string{{"1"}})
	if err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestWriteParquet_Empty(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteParquet(&buf, nil)
	if err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	if n != 0 {
		t.Errorf("wrote %d rows, want 0", n)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PAR1")) {
		t.Error("expected parquet magic")
	}
}

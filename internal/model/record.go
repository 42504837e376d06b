package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the verification result reported by a 271 transaction.
type Outcome int

const (
	Verified Outcome = iota
	NotVerified
)

func (o Outcome) String() string {
	if o == NotVerified {
		return "Not Verified"
	}
	return "Verified"
}

// DefaultResponsibility is the patient responsibility reported when a
// transaction carries no benefit amount.
const DefaultResponsibility = "0.00"

// InquiryDateLayout is the layout of the "Inquiry Date" report column.
const InquiryDateLayout = "01/02/2006"

// EligibilityRecord is one decoded 271 transaction. Records are emitted by
// value once their SE segment is reached and are not modified afterwards.
type EligibilityRecord struct {
	// TransactionControlNumber is ST02 of the source transaction, if any.
	TransactionControlNumber string

	LastName  string
	FirstName string
	MemberID  string

	Outcome Outcome

	// Raw codes as they appeared on the wire (or the UNKNOWN sentinel)
	// next to their resolved descriptions.
	RejectCode        string
	RejectDetail      string
	EligibilityCode   string
	EligibilityStatus string
	ServiceTypeCode   string
	ServiceType       string

	// PatientResponsibility is a non-negative decimal with two places.
	PatientResponsibility string

	InquiryTime time.Time
}

// ReportColumns is the canonical column set handed to report exporters.
func ReportColumns() []string {
	return []string{
		"Patient Last Name",
		"Patient First Name",
		"Inquiry Date",
		"271 Status",
		"271 Details",
		"Eligibility Status",
		"Patient Responsibility",
		"Service Type",
	}
}

// ReportValues returns the record's values in ReportColumns order.
func (r *EligibilityRecord) ReportValues() []string {
	return []string{
		r.LastName,
		r.FirstName,
		r.InquiryTime.Format(InquiryDateLayout),
		r.Outcome.String(),
		r.RejectDetail,
		r.EligibilityStatus,
		r.PatientResponsibility,
		r.ServiceType,
	}
}

// StoreColumns returns the ordered column names for COPY into
// eligibility.responses.
func StoreColumns() []string {
	return []string{
		"batch_id",
		"sequence",
		"transaction_control_number",
		"last_name",
		"first_name",
		"member_id",
		"verified",
		"reject_code",
		"reject_detail",
		"eligibility_code",
		"eligibility_status",
		"service_type_code",
		"service_type",
		"patient_responsibility",
		"inquiry_time",
	}
}

// CopyValues returns the record values in the same order as StoreColumns(),
// suitable for pgx CopyFromSource.
func (r *EligibilityRecord) CopyValues(batchID uuid.UUID, seq int64) []any {
	return []any{
		batchID,
		seq,
		r.TransactionControlNumber,
		r.LastName,
		r.FirstName,
		r.MemberID,
		r.Outcome == Verified,
		r.RejectCode,
		r.RejectDetail,
		r.EligibilityCode,
		r.EligibilityStatus,
		r.ServiceTypeCode,
		r.ServiceType,
		r.PatientResponsibility,
		r.InquiryTime,
	}
}

package model

// ReportRow mirrors the Parquet schema of an exported report line. Column
// names follow ReportColumns; the raw codes ride along as optional columns
// so a report can be re-resolved against a newer descriptor table.
type ReportRow struct {
	PatientLastName       string `parquet:"patient_last_name"`
	PatientFirstName      string `parquet:"patient_first_name"`
	InquiryDate           string `parquet:"inquiry_date"`
	Status271             string `parquet:"status_271"`
	Details271            string `parquet:"details_271"`
	EligibilityStatus     string `parquet:"eligibility_status"`
	PatientResponsibility string `parquet:"patient_responsibility"`
	ServiceType           string `parquet:"service_type"`

	MemberID        *string `parquet:"member_id,optional"`
	RejectCode      *string `parquet:"reject_code,optional"`
	EligibilityCode *string `parquet:"eligibility_code,optional"`
	ServiceTypeCode *string `parquet:"service_type_code,optional"`
}

// ReportParquetColumns lists the required Parquet columns, in ReportColumns
// order.
func ReportParquetColumns() []string {
	return []string{
		"patient_last_name",
		"patient_first_name",
		"inquiry_date",
		"status_271",
		"details_271",
		"eligibility_status",
		"patient_responsibility",
		"service_type",
	}
}

// NewReportRow projects a record onto the report schema.
func NewReportRow(r *EligibilityRecord) ReportRow {
	v := r.ReportValues()
	return ReportRow{
		PatientLastName:       v[0],
		PatientFirstName:      v[1],
		InquiryDate:           v[2],
		Status271:             v[3],
		Details271:            v[4],
		EligibilityStatus:     v[5],
		PatientResponsibility: v[6],
		ServiceType:           v[7],
		MemberID:              optStr(r.MemberID),
		RejectCode:            optStr(r.RejectCode),
		EligibilityCode:       optStr(r.EligibilityCode),
		ServiceTypeCode:       optStr(r.ServiceTypeCode),
	}
}

// Values returns the row's report columns in ReportColumns order.
func (r *ReportRow) Values() []string {
	return []string{
		r.PatientLastName,
		r.PatientFirstName,
		r.InquiryDate,
		r.Status271,
		r.Details271,
		r.EligibilityStatus,
		r.PatientResponsibility,
		r.ServiceType,
	}
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

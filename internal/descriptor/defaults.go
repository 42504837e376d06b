package descriptor

// UnknownCode is the sentinel code a decoder resolves when a transaction
// never reported a value for a code set.
const UnknownCode = "UNKNOWN"

// defaultInquiry holds the AAA03 reject reason codes of the 005010X279A1
// guide.
var defaultInquiry = map[string]string{
	UnknownCode: "Validated",
	"04":        "Authorized Quantity Exceeded",
	"15":        "Required Application Data Missing",
	"41":        "Authorization/Access Restrictions",
	"42":        "Unable to Respond at Current Time",
	"43":        "Invalid/Missing Provider Identification",
	"44":        "Invalid/Missing Provider Name",
	"45":        "Invalid/Missing Provider Specialty",
	"46":        "Invalid/Missing Provider Phone Number",
	"47":        "Invalid/Missing Provider State",
	"48":        "Invalid/Missing Referring Provider Identification Number",
	"49":        "Provider is Not Primary Care Physician",
	"50":        "Provider Ineligible for Inquiries",
	"51":        "Provider Not on File",
	"52":        "Service Dates Not Within Provider Plan Enrollment",
	"53":        "Inquired Benefit Inconsistent with Provider Type",
	"54":        "Inappropriate Product/Service ID Qualifier",
	"55":        "Inappropriate Product/Service ID",
	"56":        "Inappropriate Date",
	"57":        "Invalid/Missing Date(s) of Service",
	"58":        "Invalid/Missing Date-of-Birth",
	"60":        "Date of Birth Follows Date(s) of Service",
	"61":        "Date of Death Precedes Date(s) of Service",
	"62":        "Date of Service Not Within Allowable Inquiry Period",
	"63":        "Date of Service in Future",
	"64":        "Invalid/Missing Patient ID",
	"65":        "Invalid/Missing Patient Name",
	"66":        "Invalid/Missing Patient Gender Code",
	"67":        "Patient Not Found",
	"68":        "Duplicate Patient ID Number",
	"69":        "Inconsistent with Patient's Age",
	"70":        "Inconsistent with Patient's Gender",
	"71":        "Patient Birth Date Does Not Match That for the Patient on the Database",
	"72":        "Invalid/Missing Subscriber/Insured ID",
	"73":        "Invalid/Missing Subscriber/Insured Name",
	"74":        "Invalid/Missing Subscriber/Insured Gender Code",
	"75":        "Subscriber/Insured Not Found",
	"76":        "Duplicate Subscriber/Insured ID Number",
	"77":        "Subscriber Found, Patient Not Found",
	"78":        "Subscriber/Insured Not in Group/Plan Identified",
	"79":        "Invalid Participant Identification",
	"80":        "No Response Received - Transaction Terminated",
	"97":        "Invalid or Missing Provider Address",
	"T4":        "Payer Name or Identifier Missing",
}

// defaultEligibility holds the EB01 eligibility or benefit information codes.
var defaultEligibility = map[string]string{
	UnknownCode: "See Raw 271",
	"1":         "Active Coverage",
	"2":         "Active - Full Risk Capitation",
	"3":         "Active - Services Capitated",
	"4":         "Active - Services Capitated to Primary Care Physician",
	"5":         "Active - Pending Investigation",
	"6":         "Inactive",
	"7":         "Inactive - Pending Eligibility Update",
	"8":         "Inactive - Pending Investigation",
	"A":         "Co-Insurance",
	"B":         "Co-Payment",
	"C":         "Deductible",
	"CB":        "Coverage Basis",
	"D":         "Benefit Description",
	"E":         "Exclusions",
	"F":         "Limitations",
	"G":         "Out of Pocket (Stop Loss)",
	"H":         "Unlimited",
	"I":         "Non-Covered",
	"J":         "Cost Containment",
	"K":         "Reserve",
	"L":         "Primary Care Provider",
	"M":         "Pre-existing Condition",
	"MC":        "Managed Care Coordinator",
	"N":         "Services Restricted to Following Provider",
	"O":         "Not Deemed a Medical Necessity",
	"P":         "Benefit Disclaimer",
	"Q":         "Second Surgical Opinion Required",
	"R":         "Other or Additional Payor",
	"S":         "Prior Year(s) History",
	"T":         "Card(s) Reported Lost/Stolen",
	"U":         "Contact Following Entity for Eligibility or Benefit Information",
	"V":         "Cannot Process",
	"W":         "Other Source of Data",
	"X":         "Health Care Facility",
	"Y":         "Spend Down",
}

// defaultService holds the commonly exchanged EB03/EQ01 service type codes.
var defaultService = map[string]string{
	UnknownCode: "General",
	"1":         "Medical Care",
	"2":         "Surgical",
	"3":         "Consultation",
	"4":         "Diagnostic X-Ray",
	"5":         "Diagnostic Lab",
	"6":         "Radiation Therapy",
	"7":         "Anesthesia",
	"8":         "Surgical Assistance",
	"12":        "Durable Medical Equipment Purchase",
	"18":        "Durable Medical Equipment Rental",
	"30":        "Health Benefit Plan Coverage",
	"33":        "Chiropractic",
	"35":        "Dental Care",
	"42":        "Home Health Care",
	"45":        "Hospice",
	"47":        "Hospital",
	"48":        "Hospital - Inpatient",
	"50":        "Hospital - Outpatient",
	"51":        "Hospital - Emergency Accident",
	"52":        "Hospital - Emergency Medical",
	"53":        "Hospital - Ambulatory Surgical",
	"86":        "Emergency Services",
	"88":        "Pharmacy",
	"98":        "Professional (Physician) Visit - Office",
	"A4":        "Psychiatric",
	"AL":        "Vision (Optometry)",
	"BZ":        "Physician Visit - Office: Sick",
	"MH":        "Mental Health",
	"UC":        "Urgent Care",
}

// Defaults returns a Table seeded with the standard code lists. Loaded
// descriptor files are usually merged on top of it.
func Defaults() *Table {
	t, err := New(defaultInquiry, defaultEligibility, defaultService)
	if err != nil {
		panic("descriptor defaults: " + err.Error())
	}
	return t
}

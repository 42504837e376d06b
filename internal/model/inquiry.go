package model

// InquiryRequest carries the caller-supplied fields of a 270 inquiry.
// LastName, MemberID and ServiceTypeCode are required; FirstName and
// DateOfBirth may be empty. DateOfBirth is CCYYMMDD when set.
type InquiryRequest struct {
	LastName        string `yaml:"last_name"`
	FirstName       string `yaml:"first_name"`
	MemberID        string `yaml:"member_id"`
	DateOfBirth     string `yaml:"date_of_birth"`
	ServiceTypeCode string `yaml:"service_type"`
}

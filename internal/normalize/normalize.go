package normalize

import (
	"fmt"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

// Inquiry converts loosely formatted caller input into a wire-ready
// InquiryRequest: names are uppercased and stripped of delimiter
// characters, codes trimmed, and the date of birth rewritten as CCYYMMDD.
// Required-field checks are left to the envelope builder.
func Inquiry(in model.InquiryRequest) (model.InquiryRequest, error) {
	out := model.InquiryRequest{
		LastName:        NormalizeName(in.LastName),
		FirstName:       NormalizeName(in.FirstName),
		MemberID:        x12Reserved.Replace(NormalizeCode(in.MemberID)),
		ServiceTypeCode: NormalizeCode(in.ServiceTypeCode),
	}
	if dob := NormalizeCode(in.DateOfBirth); dob != "" {
		t := ParseDate(dob)
		if t == nil {
			return out, fmt.Errorf("unrecognized date of birth %q", in.DateOfBirth)
		}
		out.DateOfBirth = X12Date(*t)
	}
	return out, nil
}

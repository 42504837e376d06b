package model

// DescriptorKind identifies one of the three code sets a 271 response is
// resolved against.
type DescriptorKind int

const (
	InquiryStatus DescriptorKind = iota
	EligibilityStatus
	ServiceType
)

// DescriptorSource describes how a DescriptorKind is laid out in the
// descriptor CSV.
type DescriptorSource struct {
	Kind              DescriptorKind
	Name              string // e.g. "inquiry_status"
	CodeColumn        string
	DescriptionColumn string
}

// AllDescriptorSources lists the descriptor code sets in canonical order.
var AllDescriptorSources = []DescriptorSource{
	{Kind: InquiryStatus, Name: "inquiry_status", CodeColumn: "Inquiry Status Code", DescriptionColumn: "Inquiry Details"},
	{Kind: EligibilityStatus, Name: "eligibility_status", CodeColumn: "Status Code", DescriptionColumn: "Status Description"},
	{Kind: ServiceType, Name: "service_type", CodeColumn: "Service Type Code", DescriptionColumn: "Service Type Description"},
}

func (k DescriptorKind) String() string {
	if s, ok := DescriptorSourceByKind(k); ok {
		return s.Name
	}
	return "unknown"
}

// DescriptorSourceByKind returns the DescriptorSource for the given kind.
func DescriptorSourceByKind(k DescriptorKind) (DescriptorSource, bool) {
	for _, s := range AllDescriptorSources {
		if s.Kind == k {
			return s, true
		}
	}
	return DescriptorSource{}, false
}

// DescriptorSourceByName returns the DescriptorSource for the given name, or ok=false.
func DescriptorSourceByName(name string) (DescriptorSource, bool) {
	for _, s := range AllDescriptorSources {
		if s.Name == name {
			return s, true
		}
	}
	return DescriptorSource{}, false
}

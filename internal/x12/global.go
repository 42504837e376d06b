package x12

const (
	isaSegmentId = "ISA"
	ieaSegmentId = "IEA"
	gsSegmentId  = "GS"
	geSegmentId  = "GE"
	stSegmentId  = "ST"
	seSegmentId  = "SE"
	bhtSegmentId = "BHT"
	nm1SegmentId = "NM1"
	dmgSegmentId = "DMG"
	eqSegmentId  = "EQ"
	aaaSegmentId = "AAA"
	ebSegmentId  = "EB"

	isaByteCount             = 106
	isaElementSeparatorIndex = 3
	isaComponentIndex        = 104
	isaTerminatorIndex       = 105
	isaLenControlNumber      = 9
	isaLenAuthInfo           = 10
	isaLenSenderId           = 15
	isaLenReceiverId         = 15
	maxControlNumber         = 999999999

	transactionSetCode270 = "270"
	transactionSetCode271 = "271"
	implementationGuide   = "005010X279A1"
	interchangeVersion    = "00501"
	subscriberEntityCode  = "IL"
	personEntityType      = "1"
	memberIdQualifier     = "MI"
	dateFormatQualifier   = "D8"
	validRequestNo        = "N"
	transactionControlNum = "0001"
)

const (
	isaIndexSegmentId = iota
	isaIndexAuthInfoQualifier
	isaIndexAuthInfo
	isaIndexSecurityInfoQualifier
	isaIndexSecurityInfo
	isaIndexSenderIdQualifier
	isaIndexSenderId
	isaIndexReceiverIdQualifier
	isaIndexReceiverId
	isaIndexDate
	isaIndexTime
	isaIndexRepetitionSeparator
	isaIndexVersion
	isaIndexControlNumber
	isaIndexAckRequested
	isaIndexUsageIndicator
	isaIndexComponentElementSeparator
)

const (
	ieaIndexFunctionalGroupCount = iota + 1
	ieaIndexControlNumber
)

const (
	stIndexTransactionSetCode = iota + 1
	stIndexControlNumber
	stIndexVersionCode
)

const (
	seIndexNumberOfIncludedSegments = iota + 1
	seIndexControlNumber
)

// NM1 elements used by the decoder.
const (
	nm1IndexEntityIdentifier = 1
	nm1IndexLastName         = 3
	nm1IndexFirstName        = 4
	nm1IndexIdentifier       = 9
)

// AAA elements.
const (
	aaaIndexValidRequest = 1
	aaaIndexRejectReason = 3
)

// EB elements. The benefit amount is EB07.
const (
	ebIndexEligibilityCode = 1
	ebIndexServiceType     = 3
	ebIndexBenefitAmount   = 7
)

var functionalIdentifierCodes = map[string]string{
	transactionSetCode270: "HS",
	transactionSetCode271: "HB",
}

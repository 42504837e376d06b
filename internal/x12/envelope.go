package x12

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

var (
	// ErrControlNumberExhausted is returned once a builder has issued
	// control number 999999999.
	ErrControlNumberExhausted = errors.New("interchange control numbers exhausted")

	// ErrInvalidField is wrapped by errors for request values that cannot
	// be placed on the wire.
	ErrInvalidField = errors.New("invalid field")
)

// IncompleteRequestError lists the required inquiry fields that were empty.
type IncompleteRequestError struct {
	Missing []string
}

func (e *IncompleteRequestError) Error() string {
	return fmt.Sprintf("incomplete inquiry: missing %s", strings.Join(e.Missing, ", "))
}

// Inquiry is one serialized 270 interchange.
type Inquiry struct {
	ControlNumber uint64
	Segments      []Segment
	Text          string
	CreatedAt     time.Time
}

// PaddedControlNumber returns the control number as it appears in ISA13.
func (i *Inquiry) PaddedControlNumber() string {
	return padControlNumber(i.ControlNumber)
}

func padControlNumber(n uint64) string {
	return fmt.Sprintf("%0*d", isaLenControlNumber, n)
}

// Builder serializes InquiryRequests into 270 interchanges. A Builder is
// safe for concurrent use; each successful Build consumes exactly one
// control number.
type Builder struct {
	next atomic.Uint64

	delims            Delimiters
	senderQualifier   string
	senderID          string
	receiverQualifier string
	receiverID        string
	usage             string
	now               func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSender sets ISA05/ISA06 and GS02.
func WithSender(qualifier, id string) BuilderOption {
	return func(b *Builder) {
		b.senderQualifier = qualifier
		b.senderID = id
	}
}

// WithReceiver sets ISA07/ISA08 and GS03.
func WithReceiver(qualifier, id string) BuilderOption {
	return func(b *Builder) {
		b.receiverQualifier = qualifier
		b.receiverID = id
	}
}

// WithUsageIndicator sets ISA15, "P" for production or "T" for test.
func WithUsageIndicator(u string) BuilderOption {
	return func(b *Builder) { b.usage = u }
}

// WithBuilderDelimiters sets the delimiters written to the interchange.
func WithBuilderDelimiters(d Delimiters) BuilderOption {
	return func(b *Builder) { b.delims = d.withDefaults() }
}

// WithFirstControlNumber sets the control number of the next interchange.
func WithFirstControlNumber(n uint64) BuilderOption {
	return func(b *Builder) { b.next.Store(n) }
}

// WithBuilderClock overrides the clock used for envelope dates and times.
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// NewBuilder returns a Builder issuing control numbers from 1 unless
// WithFirstControlNumber says otherwise.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		delims:            DefaultDelimiters,
		senderQualifier:   "ZZ",
		senderID:          "SUBMITTER",
		receiverQualifier: "ZZ",
		receiverID:        "PAYER",
		usage:             "P",
		now:               time.Now,
	}
	b.next.Store(1)
	for _, opt := range opts {
		opt(b)
	}

	if err := b.delims.Validate(); err != nil {
		return nil, err
	}
	if b.usage != "P" && b.usage != "T" {
		return nil, fmt.Errorf("usage indicator must be P or T, got %q", b.usage)
	}
	if b.next.Load() == 0 {
		return nil, fmt.Errorf("first control number must be positive")
	}
	for name, v := range map[string]string{
		"sender qualifier":   b.senderQualifier,
		"receiver qualifier": b.receiverQualifier,
	} {
		if len(v) != 2 {
			return nil, fmt.Errorf("%s must be 2 characters, got %q", name, v)
		}
	}
	if b.senderID == "" || len(b.senderID) > isaLenSenderId {
		return nil, fmt.Errorf("sender id must be 1-%d characters, got %q", isaLenSenderId, b.senderID)
	}
	if b.receiverID == "" || len(b.receiverID) > isaLenReceiverId {
		return nil, fmt.Errorf("receiver id must be 1-%d characters, got %q", isaLenReceiverId, b.receiverID)
	}
	return b, nil
}

// NextControlNumber reports the control number the next Build would use.
func (b *Builder) NextControlNumber() uint64 {
	return b.next.Load()
}

// Build validates req and serializes it as ISA, GS, ST, BHT, NM1, DMG (only
// with a date of birth), EQ, SE, GE and IEA. Invalid requests do not
// consume a control number.
func (b *Builder) Build(req model.InquiryRequest) (*Inquiry, error) {
	if err := b.validate(req); err != nil {
		return nil, err
	}
	ctrl, err := b.reserve()
	if err != nil {
		return nil, err
	}

	now := b.now()
	segments := b.segments(req, ctrl, now)
	return &Inquiry{
		ControlNumber: ctrl,
		Segments:      segments,
		Text:          Format(segments, b.delims),
		CreatedAt:     now,
	}, nil
}

// reserve claims the next control number.
func (b *Builder) reserve() (uint64, error) {
	for {
		n := b.next.Load()
		if n > maxControlNumber {
			return 0, ErrControlNumberExhausted
		}
		if b.next.CompareAndSwap(n, n+1) {
			return n, nil
		}
	}
}

func (b *Builder) validate(req model.InquiryRequest) error {
	var missing []string
	if strings.TrimSpace(req.LastName) == "" {
		missing = append(missing, "last name")
	}
	if strings.TrimSpace(req.MemberID) == "" {
		missing = append(missing, "member id")
	}
	if strings.TrimSpace(req.ServiceTypeCode) == "" {
		missing = append(missing, "service type code")
	}
	if len(missing) > 0 {
		return &IncompleteRequestError{Missing: missing}
	}

	fields := []struct{ name, value string }{
		{"last name", req.LastName},
		{"first name", req.FirstName},
		{"member id", req.MemberID},
		{"date of birth", req.DateOfBirth},
		{"service type code", req.ServiceTypeCode},
	}
	reserved := b.delims.Segment + b.delims.Element + b.delims.Repetition + b.delims.Component
	var errs []error
	for _, f := range fields {
		if strings.ContainsAny(f.value, reserved) {
			errs = append(errs, fmt.Errorf("%w: %s %q contains a delimiter", ErrInvalidField, f.name, f.value))
		}
	}
	if dob := req.DateOfBirth; dob != "" {
		if _, err := time.Parse("20060102", dob); err != nil {
			errs = append(errs, fmt.Errorf("%w: date of birth %q is not CCYYMMDD", ErrInvalidField, dob))
		}
	}
	return errors.Join(errs...)
}

func (b *Builder) segments(req model.InquiryRequest, ctrl uint64, now time.Time) []Segment {
	padded := padControlNumber(ctrl)
	group := strconv.FormatUint(ctrl, 10)
	date := now.Format("20060102")
	clock := now.Format("1504")

	isa := make(Segment, isaIndexComponentElementSeparator+1)
	isa[isaIndexSegmentId] = isaSegmentId
	isa[isaIndexAuthInfoQualifier] = "00"
	isa[isaIndexAuthInfo] = strings.Repeat(" ", isaLenAuthInfo)
	isa[isaIndexSecurityInfoQualifier] = "00"
	isa[isaIndexSecurityInfo] = strings.Repeat(" ", isaLenAuthInfo)
	isa[isaIndexSenderIdQualifier] = b.senderQualifier
	isa[isaIndexSenderId] = fmt.Sprintf("%-*s", isaLenSenderId, b.senderID)
	isa[isaIndexReceiverIdQualifier] = b.receiverQualifier
	isa[isaIndexReceiverId] = fmt.Sprintf("%-*s", isaLenReceiverId, b.receiverID)
	isa[isaIndexDate] = now.Format("060102")
	isa[isaIndexTime] = clock
	isa[isaIndexRepetitionSeparator] = b.delims.Repetition
	isa[isaIndexVersion] = interchangeVersion
	isa[isaIndexControlNumber] = padded
	isa[isaIndexAckRequested] = "0"
	isa[isaIndexUsageIndicator] = b.usage
	isa[isaIndexComponentElementSeparator] = b.delims.Component

	segments := []Segment{
		isa,
		{gsSegmentId, functionalIdentifierCodes[transactionSetCode270], b.senderID, b.receiverID, date, clock, group, "X", implementationGuide},
		{stSegmentId, transactionSetCode270, transactionControlNum, implementationGuide},
		{bhtSegmentId, "0022", "13", padded, date, clock},
		{nm1SegmentId, subscriberEntityCode, personEntityType, req.LastName, req.FirstName, "", "", "", memberIdQualifier, req.MemberID},
	}
	if req.DateOfBirth != "" {
		segments = append(segments, Segment{dmgSegmentId, dateFormatQualifier, req.DateOfBirth})
	}
	segments = append(segments, Segment{eqSegmentId, req.ServiceTypeCode})

	// SE01 counts ST through SE inclusive.
	included := len(segments) - 2 + 1
	segments = append(segments,
		Segment{seSegmentId, strconv.Itoa(included), transactionControlNum},
		Segment{geSegmentId, "1", group},
		Segment{ieaSegmentId, "1", padded},
	)
	return segments
}

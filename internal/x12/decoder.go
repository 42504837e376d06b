package x12

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/batch"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/descriptor"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/normalize"
)

// UnmappedFunc is called for every code that had no entry in the
// descriptor table. It must be safe for concurrent use when the decoder
// options are shared by DecodeParallel.
type UnmappedFunc func(kind model.DescriptorKind, code string)

// Stats counts what a decoder saw.
type Stats struct {
	Segments       int
	Transactions   int
	Discarded      int
	InvalidAmounts int
	Unmapped       int
}

func (s *Stats) add(o Stats) {
	s.Segments += o.Segments
	s.Transactions += o.Transactions
	s.Discarded += o.Discarded
	s.InvalidAmounts += o.InvalidAmounts
	s.Unmapped += o.Unmapped
}

// workingRecord accumulates one transaction between ST and SE.
type workingRecord struct {
	controlNumber string
	lastName      string
	firstName     string
	memberID      string

	validRequest string
	rejectCode   string

	eligibilityCode string
	serviceCode     string
	amount          string

	dirty bool
}

// transition handles one segment tag.
type transition func(d *Decoder, seg Segment)

var transitions = map[string]transition{
	nm1SegmentId: (*Decoder).onName,
	aaaSegmentId: (*Decoder).onValidation,
	ebSegmentId:  (*Decoder).onBenefit,
	stSegmentId:  (*Decoder).onTransactionStart,
	seSegmentId:  (*Decoder).onTransactionEnd,
}

// Decoder turns a 271 segment stream into EligibilityRecords, one per
// SE. A Decoder is a streaming session: segments may arrive across many
// Feed or Decode calls. It is not safe for concurrent use.
type Decoder struct {
	table      *descriptor.Table
	log        zerolog.Logger
	now        func() time.Time
	onUnmapped UnmappedFunc

	batch    *batch.Aggregator
	working  workingRecord
	stats    Stats
	position int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithClock overrides the clock used to stamp inquiry times.
func WithClock(now func() time.Time) DecoderOption {
	return func(d *Decoder) { d.now = now }
}

// WithLogger sets the logger used for decode warnings.
func WithLogger(l zerolog.Logger) DecoderOption {
	return func(d *Decoder) { d.log = l }
}

// WithUnmappedHook registers fn to be told about unmapped codes.
func WithUnmappedHook(fn UnmappedFunc) DecoderOption {
	return func(d *Decoder) { d.onUnmapped = fn }
}

// NewDecoder returns a decoder resolving codes against table. A nil table
// means descriptor.Defaults().
func NewDecoder(table *descriptor.Table, opts ...DecoderOption) *Decoder {
	if table == nil {
		table = descriptor.Defaults()
	}
	d := &Decoder{
		table: table,
		log:   zerolog.Nop(),
		now:   time.Now,
		batch: batch.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed applies one segment.
func (d *Decoder) Feed(seg Segment) {
	d.position++
	d.stats.Segments++
	if t, ok := transitions[seg.Tag()]; ok {
		t(d, seg)
	}
}

// Decode feeds every segment in order and returns the session batch.
func (d *Decoder) Decode(segments []Segment) *batch.Aggregator {
	for _, seg := range segments {
		d.Feed(seg)
	}
	return d.batch
}

// Batch returns the records finalized so far.
func (d *Decoder) Batch() *batch.Aggregator {
	return d.batch
}

// Stats returns the session counters.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Pending reports whether a transaction has data but no SE yet.
func (d *Decoder) Pending() bool {
	return d.working.dirty
}

// Flush ends the session, discarding an unterminated transaction. It
// reports whether one was discarded.
func (d *Decoder) Flush() bool {
	if !d.working.dirty {
		d.working = workingRecord{}
		return false
	}
	d.discard("stream ended before SE")
	return true
}

func (d *Decoder) discard(reason string) {
	d.stats.Discarded++
	d.log.Warn().
		Str("control_number", d.working.controlNumber).
		Str("last_name", d.working.lastName).
		Int("position", d.position).
		Str("reason", reason).
		Msg("discarding incomplete transaction")
	d.working = workingRecord{}
}

func (d *Decoder) onTransactionStart(seg Segment) {
	if d.working.dirty {
		d.discard("ST before SE")
	}
	d.working = workingRecord{controlNumber: normalize.NormalizeCode(seg.Element(stIndexControlNumber))}
}

func (d *Decoder) onName(seg Segment) {
	if normalize.NormalizeCode(seg.Element(nm1IndexEntityIdentifier)) != subscriberEntityCode {
		return
	}
	d.working.lastName = seg.Element(nm1IndexLastName)
	d.working.firstName = seg.Element(nm1IndexFirstName)
	d.working.memberID = seg.Element(nm1IndexIdentifier)
	d.working.dirty = true
}

func (d *Decoder) onValidation(seg Segment) {
	d.working.validRequest = normalize.NormalizeCode(seg.Element(aaaIndexValidRequest))
	d.working.rejectCode = normalize.NormalizeCode(seg.Element(aaaIndexRejectReason))
	d.working.dirty = true
}

func (d *Decoder) onBenefit(seg Segment) {
	if v := normalize.NormalizeCode(seg.Element(ebIndexEligibilityCode)); v != "" {
		d.working.eligibilityCode = v
	}
	if v := normalize.NormalizeCode(seg.Element(ebIndexServiceType)); v != "" {
		d.working.serviceCode = v
	}
	if v := normalize.NormalizeCode(seg.Element(ebIndexBenefitAmount)); v != "" {
		amount, err := normalize.NormalizeAmount(v)
		if err != nil {
			d.stats.InvalidAmounts++
			d.log.Warn().Err(err).
				Str("control_number", d.working.controlNumber).
				Int("position", d.position).
				Msg("ignoring benefit amount")
		} else {
			d.working.amount = amount
		}
	}
	d.working.dirty = true
}

func (d *Decoder) onTransactionEnd(Segment) {
	d.batch.Append(d.finalize())
	d.stats.Transactions++
	d.working = workingRecord{}
}

// finalize freezes the working record into an EligibilityRecord.
func (d *Decoder) finalize() model.EligibilityRecord {
	w := d.working
	rec := model.EligibilityRecord{
		TransactionControlNumber: w.controlNumber,
		LastName:                 w.lastName,
		FirstName:                w.firstName,
		MemberID:                 w.memberID,
		Outcome:                  model.Verified,
		RejectCode:               orUnknown(w.rejectCode),
		EligibilityCode:          orUnknown(w.eligibilityCode),
		ServiceTypeCode:          orUnknown(w.serviceCode),
		PatientResponsibility:    model.DefaultResponsibility,
		InquiryTime:              d.now(),
	}
	if w.validRequest == validRequestNo {
		rec.Outcome = model.NotVerified
	}
	if w.amount != "" {
		rec.PatientResponsibility = w.amount
	}
	rec.RejectDetail = d.resolve(model.InquiryStatus, rec.RejectCode)
	rec.EligibilityStatus = d.resolve(model.EligibilityStatus, rec.EligibilityCode)
	rec.ServiceType = d.resolve(model.ServiceType, rec.ServiceTypeCode)
	return rec
}

func (d *Decoder) resolve(kind model.DescriptorKind, code string) string {
	m := d.table.Mapping(kind)
	if desc, ok := descriptor.Lookup(m, code); ok {
		return desc
	}
	d.stats.Unmapped++
	if d.onUnmapped != nil {
		d.onUnmapped(kind, code)
	}
	return descriptor.Resolve(m, code)
}

func orUnknown(code string) string {
	if code == "" {
		return descriptor.UnknownCode
	}
	return code
}

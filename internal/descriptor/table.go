// Package descriptor holds the immutable code→description tables used to
// turn raw 271 codes into report text.
package descriptor

import (
	"fmt"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/normalize"
)

// Mapping is a single code→description table. Keys are trimmed strings.
type Mapping map[string]string

// Table is the set of three descriptor mappings. It is built once and only
// read afterwards, so a *Table can be shared freely between goroutines.
type Table struct {
	inquiry     Mapping
	eligibility Mapping
	service     Mapping
}

// New builds a Table from the three raw mappings. Keys and descriptions are
// trimmed; two raw keys that trim to the same code must agree on the
// description. The input maps are copied and may be reused by the caller.
func New(inquiry, eligibility, service map[string]string) (*Table, error) {
	t := &Table{}
	var err error
	if t.inquiry, err = buildMapping(model.InquiryStatus, inquiry); err != nil {
		return nil, err
	}
	if t.eligibility, err = buildMapping(model.EligibilityStatus, eligibility); err != nil {
		return nil, err
	}
	if t.service, err = buildMapping(model.ServiceType, service); err != nil {
		return nil, err
	}
	return t, nil
}

func buildMapping(kind model.DescriptorKind, raw map[string]string) (Mapping, error) {
	m := make(Mapping, len(raw))
	for k, v := range raw {
		code := normalize.NormalizeCode(k)
		if code == "" {
			continue
		}
		desc := normalize.NormalizeCode(v)
		if prev, ok := m[code]; ok && prev != desc {
			return nil, fmt.Errorf("%s: conflicting descriptions for code %q: %q and %q", kind, code, prev, desc)
		}
		m[code] = desc
	}
	return m, nil
}

// Mapping returns the mapping for the given kind. The returned map must not
// be modified.
func (t *Table) Mapping(kind model.DescriptorKind) Mapping {
	switch kind {
	case model.InquiryStatus:
		return t.inquiry
	case model.EligibilityStatus:
		return t.eligibility
	case model.ServiceType:
		return t.service
	}
	return nil
}

// Resolve resolves code against the mapping for kind.
func (t *Table) Resolve(kind model.DescriptorKind, code string) string {
	return Resolve(t.Mapping(kind), code)
}

// Lookup is Resolve without the fallback.
func (t *Table) Lookup(kind model.DescriptorKind, code string) (string, bool) {
	return Lookup(t.Mapping(kind), code)
}

// Len returns the number of codes held for kind.
func (t *Table) Len(kind model.DescriptorKind) int {
	return len(t.Mapping(kind))
}

// Merge returns a new Table with the entries of overlay layered on top of
// t. Neither input is modified.
func (t *Table) Merge(overlay *Table) *Table {
	return &Table{
		inquiry:     mergeMapping(t.inquiry, overlay.inquiry),
		eligibility: mergeMapping(t.eligibility, overlay.eligibility),
		service:     mergeMapping(t.service, overlay.service),
	}
}

func mergeMapping(base, overlay Mapping) Mapping {
	m := make(Mapping, len(base)+len(overlay))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range overlay {
		m[k] = v
	}
	return m
}

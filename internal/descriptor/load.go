package descriptor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

// LoadCSVFile reads a descriptor CSV from path. See LoadCSV.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor file: %w", err)
	}
	defer f.Close()

	t, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadCSV reads the side-by-side descriptor layout: one header row naming
// the code/description column pairs of every model.AllDescriptorSources
// entry, followed by data rows. The three lists are independent, so a row
// may fill only some of the pairs. Header names match case-insensitively.
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("descriptor csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read descriptor header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	type columns struct{ code, desc int }
	cols := make(map[model.DescriptorKind]columns, len(model.AllDescriptorSources))
	var missing []string
	for _, src := range model.AllDescriptorSources {
		c, okC := index[strings.ToLower(src.CodeColumn)]
		d, okD := index[strings.ToLower(src.DescriptionColumn)]
		if !okC {
			missing = append(missing, src.CodeColumn)
		}
		if !okD {
			missing = append(missing, src.DescriptionColumn)
		}
		cols[src.Kind] = columns{c, d}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing descriptor columns: %s", strings.Join(missing, ", "))
	}

	raw := map[model.DescriptorKind]map[string]string{
		model.InquiryStatus:     {},
		model.EligibilityStatus: {},
		model.ServiceType:       {},
	}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read descriptor row %d: %w", line, err)
		}
		for kind, c := range cols {
			code := strings.TrimSpace(cell(rec, c.code))
			if code == "" {
				continue
			}
			desc := strings.TrimSpace(cell(rec, c.desc))
			if prev, ok := raw[kind][code]; ok && prev != desc {
				return nil, fmt.Errorf("row %d: %s code %q already described as %q", line, kind, code, prev)
			}
			raw[kind][code] = desc
		}
	}

	return New(raw[model.InquiryStatus], raw[model.EligibilityStatus], raw[model.ServiceType])
}

// FromOverrides builds a Table from per-source override maps keyed by
// DescriptorSource.Name, as found in the YAML config file.
func FromOverrides(overrides map[string]map[string]string) (*Table, error) {
	raw := map[model.DescriptorKind]map[string]string{}
	for name, m := range overrides {
		src, ok := model.DescriptorSourceByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown descriptor set %q", name)
		}
		raw[src.Kind] = m
	}
	return New(raw[model.InquiryStatus], raw[model.EligibilityStatus], raw[model.ServiceType])
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

package bridge

import (
	"fmt"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/config"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/descriptor"
)

// LoadTable layers the descriptor CSV and then the config overrides over
// the built-in X12 defaults.
func LoadTable(cfg *config.Config) (*descriptor.Table, error) {
	table := descriptor.Defaults()
	if cfg.DescriptorCSV != "" {
		fromCSV, err := descriptor.LoadCSVFile(cfg.DescriptorCSV)
		if err != nil {
			return nil, fmt.Errorf("load descriptor csv: %w", err)
		}
		table = table.Merge(fromCSV)
	}
	if len(cfg.DescriptorOverrides) > 0 {
		overrides, err := descriptor.FromOverrides(cfg.DescriptorOverrides)
		if err != nil {
			return nil, fmt.Errorf("load descriptor overrides: %w", err)
		}
		table = table.Merge(overrides)
	}
	return table, nil
}

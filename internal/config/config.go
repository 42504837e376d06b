package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

// Config holds all runtime configuration for an eligbridge run. Flags bind
// directly to these fields; LoadFromFile only fills fields that are still
// empty, and ApplyDefaults fills the rest.
type Config struct {
	ConfigPath string
	DSN        string
	FilePath   string
	OutPath    string
	LogFormat  string // "text" or "json"
	LogLevel   string

	SenderQualifier   string
	SenderID          string
	ReceiverQualifier string
	ReceiverID        string
	UsageIndicator    string // "P" or "T"

	SegmentTerminator   string
	ElementSeparator    string
	RepetitionSeparator string
	ComponentSeparator  string

	DescriptorCSV       string
	DescriptorOverrides map[string]map[string]string

	Workers      int
	ExportFormat string // "csv" or "parquet"
	Store        bool
	Force        bool

	InquiryFile       string
	ControlNumberFile string
}

// fileConfig is the on-disk structure, shared by YAML and TOML.
type fileConfig struct {
	DSN               string            `yaml:"dsn" toml:"dsn"`
	Sender            partyConfig       `yaml:"sender" toml:"sender"`
	Receiver          partyConfig       `yaml:"receiver" toml:"receiver"`
	UsageIndicator    string            `yaml:"usage_indicator" toml:"usage_indicator"`
	Delimiters        delimiterConfig   `yaml:"delimiters" toml:"delimiters"`
	Descriptors       descriptorsConfig `yaml:"descriptors" toml:"descriptors"`
	Decode            decodeConfig      `yaml:"decode" toml:"decode"`
	Log               logConfig         `yaml:"log" toml:"log"`
	ControlNumberFile string            `yaml:"control_number_file" toml:"control_number_file"`
}

type partyConfig struct {
	Qualifier string `yaml:"qualifier" toml:"qualifier"`
	ID        string `yaml:"id" toml:"id"`
}

type delimiterConfig struct {
	Segment    string `yaml:"segment" toml:"segment"`
	Element    string `yaml:"element" toml:"element"`
	Repetition string `yaml:"repetition" toml:"repetition"`
	Component  string `yaml:"component" toml:"component"`
}

type descriptorsConfig struct {
	CSV       string                       `yaml:"csv" toml:"csv"`
	Overrides map[string]map[string]string `yaml:"overrides" toml:"overrides"`
}

type decodeConfig struct {
	Workers int    `yaml:"workers" toml:"workers"`
	Format  string `yaml:"format" toml:"format"`
}

type logConfig struct {
	Format string `yaml:"format" toml:"format"`
	Level  string `yaml:"level" toml:"level"`
}

// LoadFromFile reads a YAML or TOML (by extension) config file and merges
// its values into every Config field that is still empty.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}

	fill(&c.DSN, fc.DSN)
	fill(&c.SenderQualifier, fc.Sender.Qualifier)
	fill(&c.SenderID, fc.Sender.ID)
	fill(&c.ReceiverQualifier, fc.Receiver.Qualifier)
	fill(&c.ReceiverID, fc.Receiver.ID)
	fill(&c.UsageIndicator, fc.UsageIndicator)
	fill(&c.SegmentTerminator, fc.Delimiters.Segment)
	fill(&c.ElementSeparator, fc.Delimiters.Element)
	fill(&c.RepetitionSeparator, fc.Delimiters.Repetition)
	fill(&c.ComponentSeparator, fc.Delimiters.Component)
	fill(&c.DescriptorCSV, fc.Descriptors.CSV)
	fill(&c.ExportFormat, fc.Decode.Format)
	fill(&c.LogFormat, fc.Log.Format)
	fill(&c.LogLevel, fc.Log.Level)
	fill(&c.ControlNumberFile, fc.ControlNumberFile)
	if c.Workers == 0 {
		c.Workers = fc.Decode.Workers
	}
	if len(fc.Descriptors.Overrides) > 0 {
		c.DescriptorOverrides = fc.Descriptors.Overrides
	}
	return c.validateOverrides()
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

// validateOverrides checks that every override set names a known
// descriptor code set.
func (c *Config) validateOverrides() error {
	for name := range c.DescriptorOverrides {
		if _, ok := model.DescriptorSourceByName(name); !ok {
			return fmt.Errorf("unknown descriptor set %q in config", name)
		}
	}
	return nil
}

// ApplyDefaults fills every field left empty by flags and the config file.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = os.Getenv("ELIGBRIDGE_DB_URL")
	}
	fill(&c.LogFormat, "text")
	fill(&c.LogLevel, "info")
	fill(&c.SenderQualifier, "ZZ")
	fill(&c.SenderID, "SUBMITTER")
	fill(&c.ReceiverQualifier, "ZZ")
	fill(&c.ReceiverID, "PAYER")
	fill(&c.UsageIndicator, "P")
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.ExportFormat == "" {
		c.ExportFormat = "csv"
		if strings.EqualFold(filepath.Ext(c.OutPath), ".parquet") {
			c.ExportFormat = "parquet"
		}
	}
	c.ExportFormat = strings.ToLower(c.ExportFormat)
	c.UsageIndicator = strings.ToUpper(c.UsageIndicator)
}

// Validate checks the fields shared by commands that read an input file.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	if c.DescriptorCSV != "" {
		if _, err := os.Stat(c.DescriptorCSV); err != nil {
			return fmt.Errorf("descriptor csv not accessible: %w", err)
		}
	}
	return c.validateOverrides()
}

// ValidateDecode checks the decode command's settings.
func (c *Config) ValidateDecode() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("--workers must be >= 1, got %d", c.Workers)
	}
	if c.ExportFormat != "csv" && c.ExportFormat != "parquet" {
		return fmt.Errorf("--format must be csv or parquet, got %q", c.ExportFormat)
	}
	if c.OutPath == "" && !c.Store {
		return fmt.Errorf("nothing to do: set --out and/or --store")
	}
	if c.Store {
		return c.validateDSN()
	}
	return nil
}

// ValidateGenerate checks the generate command's settings. The input file
// is optional: inquiries may come from flags instead.
func (c *Config) ValidateGenerate() error {
	if c.InquiryFile != "" {
		if _, err := os.Stat(c.InquiryFile); err != nil {
			return fmt.Errorf("inquiry file not accessible: %w", err)
		}
	}
	if c.UsageIndicator != "P" && c.UsageIndicator != "T" {
		return fmt.Errorf("usage indicator must be P or T, got %q", c.UsageIndicator)
	}
	if c.DSN != "" && c.ControlNumberFile != "" {
		return fmt.Errorf("--dsn and --control-number-file are mutually exclusive")
	}
	return nil
}

// ValidateMigrate checks that a database is configured.
func (c *Config) ValidateMigrate() error {
	return c.validateDSN()
}

func (c *Config) validateDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or ELIGBRIDGE_DB_URL is required")
	}
	return nil
}

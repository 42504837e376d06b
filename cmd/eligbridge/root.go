package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/config"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/exitcode"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "eligbridge",
	Short: "ANSI X12 270/271 eligibility bridge",
	Long: "Generates 270 eligibility inquiries and decodes 271 responses into " +
		"flat eligibility reports (CSV or Parquet), optionally stored in Postgres.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigPath, "config", "", "YAML or TOML config file")
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set ELIGBRIDGE_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "", "Log format: text or json (default text)")
	pf.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
	pf.StringVar(&cfg.DescriptorCSV, "descriptors", "", "Descriptor CSV layered over the built-in X12 code tables")
	pf.StringVar(&cfg.SegmentTerminator, "segment-terminator", "", "Segment terminator (default ~, or read from the ISA header)")
	pf.StringVar(&cfg.ElementSeparator, "element-separator", "", "Element separator (default *, or read from the ISA header)")
}

// loadConfig merges the config file under the flags and fills defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cfg.ConfigPath != "" {
		if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
			return err
		}
	}
	cfg.ApplyDefaults()
	return nil
}

func main() {
	err := rootCmd.Execute()
	var coded *exitcode.Error
	if err != nil && !errors.As(err, &coded) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitcode.Code(err))
}

// =============================================================================
// docbatch - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every batch command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (docbatch)
//   ├── scanCmd        (docbatch scan <folder>)
//   ├── renameCmd      (docbatch rename <folder>)
//   ├── splitCmd       (docbatch split <file.pdf>)
//   ├── excelSplitCmd  (docbatch excel-split <file>)
//   ├── openCmd        (docbatch open <path>)
//   ├── configCmd      (docbatch config show|init)
//   └── versionCmd     (docbatch version)
//
// CONFIGURATION:
//   Settings are resolved in this order, later sources winning:
//   1. Built-in defaults
//   2. The YAML config file (--config, default docbatch.yaml)
//   3. DOCBATCH_* environment variables, e.g. DOCBATCH_LOOKAHEAD=6 or
//      DOCBATCH_EXCEL_SPLIT_OUTPUT_FORMAT=csv
//   4. Command-line flags
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/docbatch/internal/batch"
	"github.com/ginjaninja78/docbatch/internal/config"
	"github.com/ginjaninja78/docbatch/internal/consignee"
	"github.com/ginjaninja78/docbatch/internal/logging"
	"github.com/ginjaninja78/docbatch/internal/pdfsplit"
	"github.com/ginjaninja78/docbatch/internal/pdftext"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

// DefaultConfigFile is used when --config is not given.
const DefaultConfigFile = "docbatch.yaml"

// envPrefix prefixes every environment override.
const envPrefix = "DOCBATCH"

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug-level diagnostic logging.
var verbose bool

// logFormat overrides log_format from the config file.
var logFormat string

// runner guarantees one batch at a time for the whole process.
var runner batch.Runner

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "docbatch",
	Short: "docbatch - Rename and split shipping documents by consignee",
	Long: `docbatch batch-processes shipping documents:

  - rename single-page PDF invoices after the consignee (Ship to) name
    found in their text
  - split a multi-page PDF into one file per page, named the same way
  - split an order spreadsheet into one file per party and commodity group

Results are written to an "output" folder next to the input. Source files
are never modified.

Example Usage:
  docbatch scan ./invoices                 # List the PDFs in a folder
  docbatch rename ./invoices               # Rename every PDF in the folder
  docbatch rename ./invoices --select 1,3  # Rename only files 1 and 3
  docbatch split ./bundle.pdf --reveal     # Split, then open the output folder
  docbatch excel-split ./orders.xlsx       # One workbook per party and group`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main(). An interrupt
// stops the current batch between items.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Diagnostic log format: text or json",
	)

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig enables DOCBATCH_* environment overrides. Nested keys use an
// underscore for the dot: excel_split.sheet is DOCBATCH_EXCEL_SPLIT_SHEET.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// configPath returns the config file in effect.
func configPath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}
	return DefaultConfigFile
}

// loadConfig reads the config file and applies environment and flag
// overrides on top of it.
func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(configPath())
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg)
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyOverrides copies every key viper has an explicit value for.
func applyOverrides(cfg *config.MainConfig) {
	stringKeys := map[string]*string{
		"output_dir_name":           &cfg.OutputDirName,
		"log_level":                 &cfg.LogLevel,
		"log_format":                &cfg.LogFormat,
		"log_file":                  &cfg.LogFile,
		"csv_settings.delimiter":    &cfg.CSVSettings.Delimiter,
		"csv_settings.encoding":     &cfg.CSVSettings.Encoding,
		"excel_split.output_format": &cfg.ExcelSplit.OutputFormat,
		"excel_split.sheet":         &cfg.ExcelSplit.Sheet,
	}
	for key, target := range stringKeys {
		if viper.IsSet(key) {
			*target = viper.GetString(key)
		}
	}

	if viper.IsSet("lookahead") {
		cfg.Lookahead = viper.GetInt("lookahead")
	}
	if viper.IsSet("write_summary") {
		cfg.WriteSummary = viper.GetBool("write_summary")
	}
	if viper.IsSet("excel_split.party_keywords") {
		cfg.ExcelSplit.PartyKeywords = viper.GetStringSlice("excel_split.party_keywords")
	}
	if viper.IsSet("excel_split.group_keywords") {
		cfg.ExcelSplit.GroupKeywords = viper.GetStringSlice("excel_split.group_keywords")
	}
}

// session is everything a batch command needs.
type session struct {
	cfg       *config.MainConfig
	logger    *slog.Logger
	processor *batch.Processor
	close     func() error
}

// newSession loads the configuration and wires the processor.
func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}, os.Stderr)
	if err != nil {
		return nil, err
	}

	processor := batch.New(
		pdftext.New(),
		pdfsplit.New(),
		batch.WithLogger(logger),
		batch.WithNameExtractor(consignee.New(cfg.Lookahead)),
		batch.WithFileManager(utils.NewFileManager(cfg.OutputDirName)),
	)

	return &session{cfg: cfg, logger: logger, processor: processor, close: closeLog}, nil
}

// =============================================================================
// docbatch - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. A single
// YAML file (docbatch.yaml by default) holds every setting; each setting has
// a default, so running without a config file is normal.
//
// CONFIGURATION SECTIONS:
//   1. Output and naming    : output_dir_name, lookahead
//   2. Logging              : log_level, log_format, log_file
//   3. Delimited text input : csv_settings
//   4. Spreadsheet split    : excel_split
//   5. Run summary          : write_summary
//
// Environment variables (DOCBATCH_*) and command-line flags are layered on
// top of the file by the cmd package.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "docbatch.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDirName is the name of the subdirectory that receives results.
	// It is created next to the scanned folder (rename) or next to the
	// source file (split, excel-split).
	// Default: "output"
	OutputDirName string `yaml:"output_dir_name" mapstructure:"output_dir_name"`

	// Lookahead is the number of lines searched after the consignee label.
	// Default: 4
	Lookahead int `yaml:"lookahead" mapstructure:"lookahead"`

	// WriteSummary writes a run summary text file into the output folder.
	// Default: false
	WriteSummary bool `yaml:"write_summary" mapstructure:"write_summary"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostic logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// LogFormat selects the diagnostic log encoding: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`

	// LogFile is an optional path for diagnostic logs. Empty means stderr.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	// =========================================================================
	// INPUT / OUTPUT FORMATS
	// =========================================================================

	// CSVSettings controls how delimited-text inputs are read and written.
	CSVSettings CSVSettings `yaml:"csv_settings" mapstructure:"csv_settings"`

	// ExcelSplit controls the spreadsheet splitter.
	ExcelSplit ExcelSplitSettings `yaml:"excel_split" mapstructure:"excel_split"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`

	// HeaderRows is the number of header rows in the CSV file.
	// Multi-row headers are merged column-wise with a space.
	// Default: 1
	HeaderRows int `yaml:"header_rows" mapstructure:"header_rows"`

	// DataStartRow is the row number where the actual data begins.
	// Row numbering starts at 1.
	// Default: HeaderRows + 1
	DataStartRow int `yaml:"data_start_row" mapstructure:"data_start_row"`

	// Encoding is the character encoding of the CSV file.
	// Supported: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
}

// =============================================================================
// EXCEL SPLIT SETTINGS
// =============================================================================

// Output formats accepted by ExcelSplitSettings.OutputFormat.
const (
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatSource = "source"
)

// ExcelSplitSettings configures the spreadsheet splitter.
type ExcelSplitSettings struct {
	// OutputFormat is the format of each per-group file:
	//   "xlsx"   - Excel workbook (default)
	//   "csv"    - delimited text using csv_settings.delimiter
	//   "source" - same format as the input file
	OutputFormat string `yaml:"output_format" mapstructure:"output_format"`

	// Sheet is the worksheet read from workbook inputs.
	// Empty means the first sheet.
	Sheet string `yaml:"sheet" mapstructure:"sheet"`

	// PartyKeywords must all appear (case-insensitive) in the party column
	// header. Default: ["party", "name"]
	PartyKeywords []string `yaml:"party_keywords" mapstructure:"party_keywords"`

	// GroupKeywords must all appear (case-insensitive) in the commodity
	// grouping column header. Default: ["comm", "group"]
	GroupKeywords []string `yaml:"group_keywords" mapstructure:"group_keywords"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct. A missing file yields the defaults.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes into a validated configuration.
func Parse(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Marshal encodes the configuration as YAML.
func (c *MainConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes the configuration to path. An existing file is only
// replaced when overwrite is set.
func (c *MainConfig) WriteFile(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDirName == "" {
		config.OutputDirName = "output"
	}
	if config.Lookahead == 0 {
		config.Lookahead = 4
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}

	// CSV settings defaults.
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.HeaderRows == 0 {
		config.CSVSettings.HeaderRows = 1
	}
	if config.CSVSettings.DataStartRow == 0 {
		config.CSVSettings.DataStartRow = config.CSVSettings.HeaderRows + 1
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}

	// Excel split defaults.
	if config.ExcelSplit.OutputFormat == "" {
		config.ExcelSplit.OutputFormat = FormatXLSX
	}
	if len(config.ExcelSplit.PartyKeywords) == 0 {
		config.ExcelSplit.PartyKeywords = []string{"party", "name"}
	}
	if len(config.ExcelSplit.GroupKeywords) == 0 {
		config.ExcelSplit.GroupKeywords = []string{"comm", "group"}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// supportedEncodings lists the encodings csvparser can decode.
var supportedEncodings = map[string]bool{
	"UTF-8":        true,
	"ISO-8859-1":   true,
	"WINDOWS-1252": true,
}

// Validate checks values that defaults cannot repair.
func (c *MainConfig) Validate() error {
	if strings.ContainsAny(c.OutputDirName, `/\`) || c.OutputDirName == "." || c.OutputDirName == ".." {
		return fmt.Errorf("output_dir_name must be a plain directory name, got %q", c.OutputDirName)
	}
	if c.Lookahead < 1 {
		return fmt.Errorf("lookahead must be at least 1, got %d", c.Lookahead)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	if c.CSVSettings.HeaderRows < 1 {
		return fmt.Errorf("csv_settings.header_rows must be at least 1")
	}
	if c.CSVSettings.DataStartRow <= c.CSVSettings.HeaderRows {
		return fmt.Errorf("csv_settings.data_start_row must come after the header rows")
	}
	if !supportedEncodings[strings.ToUpper(c.CSVSettings.Encoding)] {
		return fmt.Errorf("unsupported csv_settings.encoding %q", c.CSVSettings.Encoding)
	}

	switch c.ExcelSplit.OutputFormat {
	case FormatXLSX, FormatCSV, FormatSource:
	default:
		return fmt.Errorf("unknown excel_split.output_format %q", c.ExcelSplit.OutputFormat)
	}

	return nil
}

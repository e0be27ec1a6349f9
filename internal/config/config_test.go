package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMainConfigMissingFile(t *testing.T) {
	cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "output", cfg.OutputDirName)
	assert.Equal(t, 4, cfg.Lookahead)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ",", cfg.CSVSettings.Delimiter)
	assert.Equal(t, 1, cfg.CSVSettings.HeaderRows)
	assert.Equal(t, 2, cfg.CSVSettings.DataStartRow)
	assert.Equal(t, FormatXLSX, cfg.ExcelSplit.OutputFormat)
	assert.Equal(t, []string{"party", "name"}, cfg.ExcelSplit.PartyKeywords)
	assert.Equal(t, []string{"comm", "group"}, cfg.ExcelSplit.GroupKeywords)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, cfg *MainConfig)
		wantErr string
	}{
		{
			name: "overrides keep other defaults",
			yaml: "output_dir_name: renamed\nexcel_split:\n  output_format: csv\n",
			check: func(t *testing.T, cfg *MainConfig) {
				assert.Equal(t, "renamed", cfg.OutputDirName)
				assert.Equal(t, FormatCSV, cfg.ExcelSplit.OutputFormat)
				assert.Equal(t, 4, cfg.Lookahead)
			},
		},
		{
			name: "data start follows multi-row header",
			yaml: "csv_settings:\n  header_rows: 2\n  delimiter: ';'\n",
			check: func(t *testing.T, cfg *MainConfig) {
				assert.Equal(t, 3, cfg.CSVSettings.DataStartRow)
				assert.Equal(t, ";", cfg.CSVSettings.Delimiter)
			},
		},
		{
			name:    "bad output format",
			yaml:    "excel_split:\n  output_format: pdf\n",
			wantErr: "output_format",
		},
		{
			name:    "bad log level",
			yaml:    "log_level: chatty\n",
			wantErr: "log_level",
		},
		{
			name:    "output dir must be a name",
			yaml:    "output_dir_name: ../elsewhere\n",
			wantErr: "output_dir_name",
		},
		{
			name:    "negative lookahead",
			yaml:    "lookahead: -2\n",
			wantErr: "lookahead",
		},
		{
			name:    "unsupported encoding",
			yaml:    "csv_settings:\n  encoding: EBCDIC\n",
			wantErr: "encoding",
		},
		{
			name:    "malformed yaml",
			yaml:    "lookahead: [1,\n",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	cfg := Default()
	cfg.Lookahead = 6
	require.NoError(t, cfg.WriteFile(path, false))

	err := cfg.WriteFile(path, false)
	require.Error(t, err, "existing file is not replaced without overwrite")

	loaded, err := LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Lookahead)

	require.NoError(t, os.Chmod(path, 0644))
	require.NoError(t, Default().WriteFile(path, true))
	loaded, err = LoadMainConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Lookahead)
}

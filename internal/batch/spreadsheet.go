package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/docbatch/internal/config"
	"github.com/ginjaninja78/docbatch/internal/consignee"
	"github.com/ginjaninja78/docbatch/internal/csvparser"
	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/internal/sheetwriter"
	"github.com/ginjaninja78/docbatch/internal/types"
	"github.com/ginjaninja78/docbatch/internal/validation"
	"github.com/ginjaninja78/docbatch/internal/xlsxparser"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

var (
	workbookExtensions  = []string{".xlsx", ".xlsm"}
	delimitedExtensions = []string{".csv", ".tsv", ".txt"}
)

// SpreadsheetExtensions lists every input extension SplitSpreadsheet reads.
func SpreadsheetExtensions() []string {
	return append(append([]string(nil), workbookExtensions...), delimitedExtensions...)
}

// SpreadsheetOptions controls how a table is read, grouped and written.
type SpreadsheetOptions struct {
	// CSV is used for delimited-text inputs and csv outputs.
	CSV config.CSVSettings

	// Sheet is the worksheet to read from workbooks. Empty means the first.
	Sheet string

	// OutputFormat is config.FormatXLSX, config.FormatCSV or
	// config.FormatSource.
	OutputFormat string

	// PartyKeywords and GroupKeywords locate the two grouping columns.
	PartyKeywords []string
	GroupKeywords []string
}

// SpreadsheetOptionsFrom builds options from the application config.
func SpreadsheetOptionsFrom(cfg *config.MainConfig) SpreadsheetOptions {
	return SpreadsheetOptions{
		CSV:           cfg.CSVSettings,
		Sheet:         cfg.ExcelSplit.Sheet,
		OutputFormat:  cfg.ExcelSplit.OutputFormat,
		PartyKeywords: cfg.ExcelSplit.PartyKeywords,
		GroupKeywords: cfg.ExcelSplit.GroupKeywords,
	}
}

// group is the rows sharing one sanitized (party, group) pair, held as
// indices into the source table.
type group struct {
	party string
	group string
	rows  []int
}

func (g *group) key() string {
	return g.party + "_" + g.group
}

// LoadTable reads a workbook or delimited-text file by extension.
func LoadTable(src string, opts SpreadsheetOptions) (*types.Table, error) {
	switch {
	case validation.HasExtension(src, workbookExtensions...):
		return xlsxparser.ParseTable(src, opts.Sheet)
	case validation.HasExtension(src, ".tsv"):
		settings := opts.CSV
		settings.Delimiter = "\t"
		return csvparser.Parse(src, settings)
	case validation.HasExtension(src, delimitedExtensions...):
		return csvparser.Parse(src, opts.CSV)
	case validation.HasExtension(src, ".xls"):
		return nil, &validation.ValidationError{
			Field:   "file",
			Value:   src,
			Message: "legacy .xls workbooks are not supported; save as .xlsx",
			Err:     validation.ErrInvalidPath,
		}
	default:
		return nil, &validation.ValidationError{
			Field:   "file",
			Value:   src,
			Message: fmt.Sprintf("expected one of %s", strings.Join(SpreadsheetExtensions(), ", ")),
			Err:     validation.ErrInvalidPath,
		}
	}
}

// SplitSpreadsheet writes one file per distinct (party, group) pair of src
// into destDir. Columns are resolved before anything is written; a missing
// column is a setup error and no file is created.
func (p *Processor) SplitSpreadsheet(ctx context.Context, src, destDir string, opts SpreadsheetOptions, em progress.Emitter) (*Summary, error) {
	if err := validation.CheckFile(src); err != nil {
		return nil, err
	}

	table, err := LoadTable(src, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(src), err)
	}

	partyCol, groupCol, err := validation.ResolveColumns(table.Headers, opts.PartyKeywords, opts.GroupKeywords)
	if err != nil {
		return nil, err
	}

	ext, comma := outputFormat(src, opts)

	if err := utils.EnsureDir(destDir); err != nil {
		return nil, err
	}

	summary := newSummary(OpExcelSplit, src, destDir)
	log := runLogger(p.logger, summary.RunID)

	progress.Info(em, "Loaded %d row(s) from %s", table.RowCount(), filepath.Base(src))
	progress.Info(em, "Party column: %s; grouping column: %s", partyCol, groupCol)
	log.Info("excel split started", "source", src, "rows", table.RowCount(), "party", partyCol, "group", groupCol)

	groups, skipped := partition(table, partyCol, groupCol)
	if skipped > 0 {
		progress.Warn(em, "Skipped %d row(s) with a blank party or grouping value", skipped)
		log.Warn("rows skipped", "count", skipped)
	}

	summary.Total = len(groups)
	progress.Info(em, "Found %d group(s)", len(groups))

	options := sheetwriter.DefaultOptions()
	options.Comma = comma

	for _, g := range groups {
		if ctx.Err() != nil {
			return interrupted(ctx, em, summary)
		}

		item := g.key()
		progress.Item(em, item, progress.StatusProcessing, progress.LevelInfo, "Processing", nil)

		fileName := item + ext
		dst := filepath.Join(destDir, fileName)
		if err := sheetwriter.WriteWithOptions(table.Subset(g.rows), dst, options); err != nil {
			log.Error("group write failed", "group", item, "dest", dst, "error", err)
			summary.record(em, Result{Input: item, Status: progress.StatusError, Message: fmt.Sprintf("Could not write %s", fileName), Err: err})
			continue
		}

		log.Debug("group written", "group", item, "rows", len(g.rows), "dest", dst)
		summary.record(em, Result{
			Input:   item,
			Output:  dst,
			Status:  progress.StatusDone,
			Message: fmt.Sprintf("Saved %d row(s) as %s", len(g.rows), fileName),
		})
	}

	log.Info("excel split finished", "succeeded", summary.Succeeded(), "total", summary.Total)
	return summary.finish(em), nil
}

// partition groups rows by sanitized (party, group) in first-occurrence
// order. Rows whose party or group sanitizes to nothing are skipped.
func partition(table *types.Table, partyCol, groupCol string) ([]*group, int) {
	var (
		groups  []*group
		index   = make(map[string]*group)
		skipped int
	)

	for i, row := range table.Rows {
		party := consignee.Sanitize(row[partyCol])
		grp := consignee.Sanitize(row[groupCol])
		if party == "" || grp == "" {
			skipped++
			continue
		}

		// Sanitized values hold no underscores, so the joined key is unique.
		key := party + "_" + grp
		g, ok := index[key]
		if !ok {
			g = &group{party: party, group: grp}
			index[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, i)
	}

	return groups, skipped
}

// outputFormat returns the extension and CSV delimiter for group files.
// The source format keeps the input's own extension for delimited text.
func outputFormat(src string, opts SpreadsheetOptions) (string, rune) {
	switch opts.OutputFormat {
	case config.FormatCSV:
		return ".csv", ','
	case config.FormatSource:
		switch {
		case validation.HasExtension(src, workbookExtensions...):
			return ".xlsx", ','
		case validation.HasExtension(src, ".tsv"):
			return ".tsv", '\t'
		default:
			return strings.ToLower(filepath.Ext(src)), csvparser.Comma(opts.CSV.Delimiter)
		}
	default:
		return ".xlsx", ','
	}
}

// =============================================================================
// docbatch - Sheet Writer Module
// =============================================================================
//
// This module writes a types.Table back to disk as either an XLSX workbook or
// a delimited text file. The format follows the destination extension:
//
//   groups/Acme_Steel.xlsx  -> single-sheet workbook, header in row 1
//   groups/Acme_Steel.csv   -> delimited text, header on line 1
//   groups/Acme_Steel.tsv   -> same, .txt too; the delimiter is Options.Comma
//
// Column order is the table's header order. No index column is added.
// Workbook cells holding numbers are written as numbers, carrying the
// column's number format when the table has one.
//
// =============================================================================

package sheetwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/docbatch/internal/types"
)

// DefaultSheetName is the worksheet name used for written workbooks.
const DefaultSheetName = "Sheet1"

// Options contains options for writing.
type Options struct {
	// SheetName names the single worksheet of an XLSX output.
	// Default: "Sheet1"
	SheetName string

	// Comma is the field delimiter for CSV output.
	// Default: ','
	Comma rune
}

// DefaultOptions returns the default write options.
func DefaultOptions() Options {
	return Options{
		SheetName: DefaultSheetName,
		Comma:     ',',
	}
}

// Write writes the table to path using the default options.
func Write(table *types.Table, path string) error {
	return WriteWithOptions(table, path, DefaultOptions())
}

// WriteWithOptions writes the table to path. Existing files are replaced.
func WriteWithOptions(table *types.Table, path string, options Options) error {
	if table == nil {
		return fmt.Errorf("no table to write")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return writeXLSX(table, path, options)
	case ".csv", ".tsv", ".txt":
		return writeCSV(table, path, options)
	default:
		return fmt.Errorf("unsupported output extension %q", ext)
	}
}

// writeXLSX saves the table as a single-sheet workbook.
func writeXLSX(table *types.Table, path string, options Options) error {
	sheet := options.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := toCells(table.Headers)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := typedCells(table, i)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := applyFormats(f, sheet, table); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeCSV saves the table as delimited text.
func writeCSV(table *types.Table, path string, options Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	w := csv.NewWriter(file)
	if options.Comma != 0 {
		w.Comma = options.Comma
	}

	if err := w.Write(table.Headers); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range table.Rows {
		if err := w.Write(table.Record(i)); err != nil {
			file.Close()
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

// typedCells returns row i with numeric cells as float64 so the workbook
// stores numbers rather than text.
func typedCells(table *types.Table, i int) []any {
	record := table.Record(i)
	cells := make([]any, len(record))
	for j, h := range table.Headers {
		if v, ok := table.Number(i, h); ok {
			cells[j] = v
			continue
		}
		cells[j] = record[j]
	}
	return cells
}

// applyFormats styles the data cells of every column that carries a number
// format. The header row keeps the default style.
func applyFormats(f *excelize.File, sheet string, table *types.Table) error {
	if len(table.Rows) == 0 {
		return nil
	}

	for j, h := range table.Headers {
		format, ok := table.Formats[h]
		if !ok || (format.ID == 0 && format.Custom == "") {
			continue
		}

		style := &excelize.Style{NumFmt: format.ID}
		if format.Custom != "" {
			custom := format.Custom
			style.CustomNumFmt = &custom
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create style for %s: %w", h, err)
		}

		top, err := excelize.CoordinatesToCellName(j+1, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(j+1, len(table.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, top, bottom, id); err != nil {
			return fmt.Errorf("failed to format column %s: %w", h, err)
		}
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// =============================================================================
// docbatch - XLSX Table Reader
// =============================================================================
//
// This module reads one worksheet of an XLSX workbook into a types.Table so
// the spreadsheet splitter can treat workbooks and CSV exports alike.
//
// SHEET LAYOUT (defaults):
//
//   | Row 1 | Party Name | Comm Grouping | Qty | ...  <- header row
//   | Row 2 | Acme Corp  | Steel         | 10  | ...  <- first data row
//
// Cells are read twice: as formatted display values, which is what a user
// sees in Excel and what grouping and CSV output use, and as raw values so
// numeric and date cells can be written back as numbers with their format.
//
// Legacy binary .xls workbooks are not readable by excelize; callers reject
// them before getting here.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/docbatch/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseTable reads a worksheet into a Table. Row 1 holds the headers and
// data starts on row 2.
//
// PARAMETERS:
//   - path: The path to the XLSX workbook.
//   - sheet: The worksheet name; empty selects the first sheet.
//
// RETURNS:
//   - A pointer to the Table containing headers, display values and the
//     raw value of every numeric cell.
//   - An error if the workbook cannot be opened or the sheet is missing.
func ParseTable(path, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	table, err := parseSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	table.SourceFile = path
	return table, nil
}

// SheetNames lists the worksheets of a workbook in tab order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// parseSheet reads a single sheet from an open workbook.
func parseSheet(f *excelize.File, sheet string) (*types.Table, error) {
	sheetName, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet '%s' has no header row", sheetName)
	}

	table := &types.Table{
		Headers: types.CleanHeaders(rows[0]),
		Formats: make(map[string]types.NumberFormat),
	}
	table.Rows = make([]map[string]string, 0, len(rows)-1)
	table.Numbers = make([]map[string]float64, 0, len(rows)-1)

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		// GetRows drops trailing empty cells, so a blank row arrives as nil.
		if len(row) == 0 || types.IsRowEmpty(row) {
			continue
		}

		var rawRow []string
		if i < len(raw) {
			rawRow = raw[i]
		}
		numbers, err := numericCells(f, sheetName, i, table, rawRow)
		if err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, types.RowMap(table.Headers, row))
		table.Numbers = append(table.Numbers, numbers)
	}

	return table, nil
}

// numericCells returns the raw numbers of one sheet row (0-based index) and
// records the number format of columns seen numeric for the first time.
// Text cells that merely look like numbers stay text.
func numericCells(f *excelize.File, sheet string, rowIndex int, table *types.Table, rawRow []string) (map[string]float64, error) {
	numbers := make(map[string]float64)

	for col, value := range rawRow {
		if col >= len(table.Headers) || strings.TrimSpace(value) == "" {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+1)
		if err != nil {
			return nil, err
		}
		cellType, err := f.GetCellType(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("failed to read cell %s: %w", cell, err)
		}
		if cellType != excelize.CellTypeUnset && cellType != excelize.CellTypeNumber {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}

		header := table.Headers[col]
		numbers[header] = v

		if _, seen := table.Formats[header]; !seen {
			table.Formats[header] = cellFormat(f, sheet, cell)
		}
	}

	return numbers, nil
}

// cellFormat returns the number format applied to cell. Unreadable styles
// fall back to the General format.
func cellFormat(f *excelize.File, sheet, cell string) types.NumberFormat {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return types.NumberFormat{}
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return types.NumberFormat{}
	}

	format := types.NumberFormat{ID: style.NumFmt}
	if style.CustomNumFmt != nil {
		format.Custom = *style.CustomNumFmt
	}
	return format
}

// resolveSheet maps the requested sheet to an existing sheet name. Matching
// is case-insensitive, the same way Excel treats tab names.
func resolveSheet(f *excelize.File, sheet string) (string, error) {
	if strings.TrimSpace(sheet) == "" {
		name := f.GetSheetName(0)
		if name == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return name, nil
	}

	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, sheet) {
			return name, nil
		}
	}

	return "", fmt.Errorf("sheet '%s' not found", sheet)
}

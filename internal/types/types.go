// =============================================================================
// docbatch - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (readers)
//   - sheetwriter (writer)
//   - validation
//   - batch
//
// =============================================================================

package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is a header-addressed tabular file loaded fully into memory.
type Table struct {
	// Headers contains the column headers in source order.
	// Output files keep this order.
	Headers []string

	// Rows contains the data rows as maps of header -> display value.
	Rows []map[string]string

	// Numbers holds, per row, the unformatted value of every numeric cell of
	// a workbook source. It is nil for delimited-text sources, whose numbers
	// are recognised from the text instead.
	Numbers []map[string]float64

	// Formats is the number format of each numeric workbook column, taken
	// from its first numeric cell.
	Formats map[string]NumberFormat

	// SourceFile is the path the table was read from.
	SourceFile string
}

// NumberFormat is a spreadsheet number format: a built-in format ID or a
// custom format code.
type NumberFormat struct {
	ID     int
	Custom string
}

// Subset returns a table with the same headers, formats and source holding
// only the rows at indices, in the given order.
func (t *Table) Subset(indices []int) *Table {
	sub := &Table{
		Headers:    t.Headers,
		Rows:       make([]map[string]string, len(indices)),
		Formats:    t.Formats,
		SourceFile: t.SourceFile,
	}
	if t.Numbers != nil {
		sub.Numbers = make([]map[string]float64, len(indices))
	}
	for i, idx := range indices {
		sub.Rows[i] = t.Rows[idx]
		if t.Numbers != nil {
			sub.Numbers[i] = t.Numbers[idx]
		}
	}
	return sub
}

// Record returns the row at index i as an ordered slice aligned to Headers.
func (t *Table) Record(i int) []string {
	row := t.Rows[i]
	record := make([]string, len(t.Headers))
	for j, h := range t.Headers {
		record[j] = row[h]
	}
	return record
}

// plainNumber matches decimal text that round-trips as a number. Values with
// leading zeros, such as "007" or postal codes, stay text.
var plainNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// Number returns the numeric value of the cell in row i, column header.
func (t *Table) Number(i int, header string) (float64, bool) {
	if t.Numbers != nil {
		v, ok := t.Numbers[i][header]
		return v, ok
	}

	s := t.Rows[i][header]
	if !plainNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// =============================================================================
// ROW HELPERS
// =============================================================================

// CleanHeaders trims header values, names blank headers Column_N and
// suffixes repeats with _2, _3 so every header addresses one column. A
// suffix never takes a name that another column already carries.
func CleanHeaders(headers []string) []string {
	names := make([]string, len(headers))
	taken := make(map[string]bool, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		names[i] = header
		taken[header] = true
	}

	cleaned := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		if used[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !used[candidate] && !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		cleaned[i] = name
	}

	return cleaned
}

// RowMap pairs a record with headers. Missing trailing cells become empty
// strings and cells beyond the last header are dropped.
func RowMap(headers []string, row []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			m[h] = strings.TrimSpace(row[i])
		} else {
			m[h] = ""
		}
	}
	return m
}

// IsRowEmpty checks if a row contains only empty cells.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

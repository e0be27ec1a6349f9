package sheetwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/docbatch/internal/types"
)

func sampleTable() *types.Table {
	return &types.Table{
		Headers: []string{"Party Name", "Comm Grouping", "Qty"},
		Rows: []map[string]string{
			{"Party Name": "Acme Corp", "Comm Grouping": "Steel", "Qty": "10"},
			{"Party Name": "Acme Corp", "Comm Grouping": "Steel", "Qty": "4"},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Acme_Steel.xlsx")
	require.NoError(t, Write(sampleTable(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Party Name", "Comm Grouping", "Qty"},
		{"Acme Corp", "Steel", "10"},
		{"Acme Corp", "Steel", "4"},
	}, rows)
}

func TestWriteXLSXSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteWithOptions(sampleTable(), path, Options{SheetName: "Orders"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Orders"}, f.GetSheetList())
}

func TestWriteXLSXKeepsNumbers(t *testing.T) {
	table := &types.Table{
		Headers: []string{"Party Name", "Code", "Amount"},
		Rows: []map[string]string{
			{"Party Name": "Acme Corp", "Code": "007", "Amount": "1,234.50"},
		},
		Numbers: []map[string]float64{{"Amount": 1234.5}},
		Formats: map[string]types.NumberFormat{"Amount": {ID: 4}},
	}

	path := filepath.Join(t.TempDir(), "Acme_Steel.xlsx")
	require.NoError(t, Write(table, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cellType, err := f.GetCellType(DefaultSheetName, "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)

	raw, err := f.GetCellValue(DefaultSheetName, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.5", raw)

	shown, err := f.GetCellValue(DefaultSheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", shown)

	styleID, err := f.GetCellStyle(DefaultSheetName, "C2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, 4, style.NumFmt)

	cellType, err = f.GetCellType(DefaultSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, cellType, "leading-zero codes stay text")
}

func TestWriteTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Acme_Steel.tsv")
	require.NoError(t, WriteWithOptions(sampleTable(), path, Options{Comma: '\t'}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Party Name\tComm Grouping\tQty\nAcme Corp\tSteel\t10\nAcme Corp\tSteel\t4\n", string(data))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Acme_Steel.csv")
	require.NoError(t, WriteWithOptions(sampleTable(), path, Options{Comma: ';'}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Party Name;Comm Grouping;Qty\nAcme Corp;Steel;10\nAcme Corp;Steel;4\n", string(data))
}

func TestWriteErrors(t *testing.T) {
	dir := t.TempDir()

	err := Write(sampleTable(), filepath.Join(dir, "out.ods"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	require.Error(t, Write(nil, filepath.Join(dir, "out.csv")))
	require.Error(t, Write(sampleTable(), filepath.Join(dir, "missing", "out.csv")))
}

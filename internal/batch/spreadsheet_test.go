package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/docbatch/internal/config"
	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/internal/validation"
	"github.com/ginjaninja78/docbatch/internal/xlsxparser"
)

func spreadsheetOptions(format string) SpreadsheetOptions {
	opts := SpreadsheetOptionsFrom(config.Default())
	opts.OutputFormat = format
	return opts
}

func writeCSV(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))
	return src, filepath.Join(dir, "output")
}

func TestSplitSpreadsheetTwoGroups(t *testing.T) {
	src, out := writeCSV(t, "Date,Party Name,Comm Grouping,Qty\n"+
		"01/03,Acme Corp.,Steel,10\n"+
		"02/03,Beta Traders,Copper,5\n"+
		"03/03,Acme Corp,Steel,7\n")

	rec := &progress.Recorder{}
	summary, err := New(newFakeExtractor(), nil).
		SplitSpreadsheet(context.Background(), src, out, spreadsheetOptions(config.FormatXLSX), rec)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Succeeded())

	order, _ := rec.Statuses()
	assert.Equal(t, []string{"Acme Corp_Steel", "Beta Traders_Copper"}, order, "first occurrence order")

	acme, err := xlsxparser.ParseTable(filepath.Join(out, "Acme Corp_Steel.xlsx"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Party Name", "Comm Grouping", "Qty"}, acme.Headers)
	require.Equal(t, 2, acme.RowCount())
	assert.Equal(t, "10", acme.Rows[0]["Qty"])
	assert.Equal(t, "Acme Corp.", acme.Rows[0]["Party Name"], "cell values are written unchanged")
	assert.Equal(t, "7", acme.Rows[1]["Qty"])

	beta, err := xlsxparser.ParseTable(filepath.Join(out, "Beta Traders_Copper.xlsx"), "")
	require.NoError(t, err)
	require.Equal(t, 1, beta.RowCount())
	assert.Equal(t, "5", beta.Rows[0]["Qty"])
}

func TestSplitSpreadsheetMissingColumn(t *testing.T) {
	src, out := writeCSV(t, "Customer,Comm Grouping\nAcme,Steel\n")

	rec := &progress.Recorder{}
	summary, err := New(newFakeExtractor(), nil).
		SplitSpreadsheet(context.Background(), src, out, spreadsheetOptions(config.FormatXLSX), rec)
	require.ErrorIs(t, err, validation.ErrColumnNotFound)
	assert.Nil(t, summary)
	assert.Empty(t, rec.Events)
	assert.NoDirExists(t, out, "nothing is written")
}

func TestSplitSpreadsheetSkipsBlankKeys(t *testing.T) {
	src, out := writeCSV(t, "Party Name,Comm Grouping\n"+
		"Acme,Steel\n"+
		",Steel\n"+
		"Beta,---\n")

	rec := &progress.Recorder{}
	summary, err := New(newFakeExtractor(), nil).
		SplitSpreadsheet(context.Background(), src, out, spreadsheetOptions(config.FormatCSV), rec)
	require.NoError(t, err)
	assert.Equal(t, "1 of 1 succeeded", summary.String())

	var warned bool
	for _, e := range rec.Events {
		if e.Level == progress.LevelWarning && e.Item == "" && e.Message == "Skipped 2 row(s) with a blank party or grouping value" {
			warned = true
		}
	}
	assert.True(t, warned)

	data, err := os.ReadFile(filepath.Join(out, "Acme_Steel.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Party Name,Comm Grouping\nAcme,Steel\n", string(data))
}

func TestSplitSpreadsheetSourceFormat(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(src, []byte("Party Name;Comm Group\nAcme;Steel\n"), 0o644))

	opts := spreadsheetOptions(config.FormatSource)
	opts.CSV.Delimiter = ";"

	out := filepath.Join(dir, "output")
	_, err := New(newFakeExtractor(), nil).SplitSpreadsheet(context.Background(), src, out, opts, progress.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "Acme_Steel.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Party Name;Comm Group\nAcme;Steel\n", string(data))
}

func TestSplitSpreadsheetWorkbookInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "orders.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"PARTY NAME", "COMM GROUP", "Qty"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Acme", "Steel", 3}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Acme", "Zinc", 4}))
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "output")
	summary, err := New(newFakeExtractor(), nil).
		SplitSpreadsheet(context.Background(), src, out, spreadsheetOptions(config.FormatSource), progress.Discard)
	require.NoError(t, err)
	assert.Equal(t, "2 of 2 succeeded", summary.String())
	assert.FileExists(t, filepath.Join(out, "Acme_Steel.xlsx"))
	assert.FileExists(t, filepath.Join(out, "Acme_Zinc.xlsx"))

	written, err := excelize.OpenFile(filepath.Join(out, "Acme_Steel.xlsx"))
	require.NoError(t, err)
	defer written.Close()

	cellType, err := written.GetCellType("Sheet1", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "quantities stay numeric")
	qty, err := written.GetCellValue("Sheet1", "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3", qty)
}

func TestSplitSpreadsheetSourceFormatKeepsTSV(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "orders.tsv")
	require.NoError(t, os.WriteFile(src, []byte("Party Name\tComm Group\nAcme\tSteel\n"), 0o644))

	out := filepath.Join(dir, "output")
	_, err := New(newFakeExtractor(), nil).
		SplitSpreadsheet(context.Background(), src, out, spreadsheetOptions(config.FormatSource), progress.Discard)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(out, "Acme_Steel.csv"))
	data, err := os.ReadFile(filepath.Join(out, "Acme_Steel.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "Party Name\tComm Group\nAcme\tSteel\n", string(data))
}

func TestLoadTableUnsupported(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"legacy.xls", "orders.ods"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := New(newFakeExtractor(), nil).
			SplitSpreadsheet(context.Background(), path, filepath.Join(dir, "output"), spreadsheetOptions(config.FormatXLSX), progress.Discard)
		require.ErrorIs(t, err, validation.ErrInvalidPath, name)
	}
}
